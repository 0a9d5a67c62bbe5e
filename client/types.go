package client

import "encoding/xml"

// NameValue is one field of a record as the CRM transmits it.
type NameValue struct {
	Name  string `xml:"name" json:"name"`
	Value string `xml:"value" json:"value"`
}

// EntryValue is a record: its ID plus the name/value pairs of its fields.
type EntryValue struct {
	ID            string      `xml:"id" json:"id"`
	ModuleName    string      `xml:"module_name" json:"module_name"`
	NameValueList []NameValue `xml:"name_value_list>item" json:"name_value_list"`
}

// RawXML keeps a response element the client does not model.
type RawXML struct {
	Inner string `xml:",innerxml" json:"-"`
}

// EntryListResult is the result of get_entry_list.
type EntryListResult struct {
	ResultCount      int          `xml:"result_count" json:"result_count"`
	TotalCount       int          `xml:"total_count" json:"total_count"`
	NextOffset       int          `xml:"next_offset" json:"next_offset"`
	EntryList        []EntryValue `xml:"entry_list>item" json:"entry_list"`
	RelationshipList RawXML       `xml:"relationship_list" json:"-"`
}

// GetEntryResult is the result of get_entry.
type GetEntryResult struct {
	EntryList        []EntryValue `xml:"entry_list>item" json:"entry_list"`
	RelationshipList RawXML       `xml:"relationship_list" json:"-"`
}

// EntriesCountResult is the result of get_entries_count.
type EntriesCountResult struct {
	ResultCount int `xml:"result_count" json:"result_count"`
}

// SetEntryResult is the result of set_entry.
type SetEntryResult struct {
	ID string `xml:"id" json:"id"`
}

// SetRelationshipResult is the result of set_relationship.
type SetRelationshipResult struct {
	Created int `xml:"created" json:"created"`
	Failed  int `xml:"failed" json:"failed"`
	Deleted int `xml:"deleted" json:"deleted"`
}

// ACL is one access rule of a module.
type ACL struct {
	Action string `xml:"action" json:"action"`
	Access string `xml:"access" json:"access"`
}

// ModuleInfo describes one module available to the session user.
type ModuleInfo struct {
	ModuleKey   string `xml:"module_key" json:"module_key"`
	ModuleLabel string `xml:"module_label" json:"module_label"`
	ACLs        []ACL  `xml:"acls>item" json:"acls,omitempty"`
}

// ModuleList is the result of get_available_modules.
type ModuleList struct {
	Modules []ModuleInfo `xml:"modules>item" json:"modules"`
}

// Field describes one field of a module.
type Field struct {
	Name         string      `xml:"name" json:"name"`
	Type         string      `xml:"type" json:"type"`
	Group        string      `xml:"group" json:"group,omitempty"`
	IDName       string      `xml:"id_name" json:"id_name,omitempty"`
	Label        string      `xml:"label" json:"label"`
	Required     int         `xml:"required" json:"required"`
	Options      []NameValue `xml:"options>item" json:"options,omitempty"`
	DefaultValue string      `xml:"default_value" json:"default_value,omitempty"`
}

// LinkField describes one relationship link of a module.
type LinkField struct {
	Name         string `xml:"name" json:"name"`
	Type         string `xml:"type" json:"type"`
	Relationship string `xml:"relationship" json:"relationship"`
	Module       string `xml:"module" json:"module"`
	BeanName     string `xml:"bean_name" json:"bean_name"`
}

// ModuleFields is the result of get_module_fields.
type ModuleFields struct {
	ModuleName   string      `xml:"module_name" json:"module_name"`
	TableName    string      `xml:"table_name" json:"table_name"`
	ModuleFields []Field     `xml:"module_fields>item" json:"module_fields"`
	LinkFields   []LinkField `xml:"link_fields>item" json:"link_fields,omitempty"`
}

// Request types. Element names and order follow the service WSDL.

// itemList encodes a SOAP array as <name><item>…</item></name>, emitting the
// wrapper even when empty.
type itemList[T any] struct {
	Items []T `xml:"item"`
}

// LinkNameToFields selects fields of a related module.
type LinkNameToFields struct {
	Name  string   `xml:"name"`
	Value []string `xml:"value>item"`
}

type userAuth struct {
	UserName string `xml:"user_name"`
	Password string `xml:"password"`
	Version  string `xml:"version"`
}

type loginRequest struct {
	XMLName         xml.Name            `xml:"tns:login"`
	UserAuth        userAuth            `xml:"user_auth"`
	ApplicationName string              `xml:"application_name"`
	NameValueList   itemList[NameValue] `xml:"name_value_list"`
}

type getEntryListRequest struct {
	XMLName               xml.Name                   `xml:"tns:get_entry_list"`
	Session               string                     `xml:"session"`
	ModuleName            string                     `xml:"module_name"`
	Query                 string                     `xml:"query"`
	OrderBy               string                     `xml:"order_by"`
	Offset                int                        `xml:"offset"`
	SelectFields          itemList[string]           `xml:"select_fields"`
	LinkNameToFieldsArray itemList[LinkNameToFields] `xml:"link_name_to_fields_array"`
	MaxResults            int                        `xml:"max_results"`
	Deleted               int                        `xml:"deleted"`
	Favorites             bool                       `xml:"favorites"`
}

type getEntryRequest struct {
	XMLName               xml.Name                   `xml:"tns:get_entry"`
	Session               string                     `xml:"session"`
	ModuleName            string                     `xml:"module_name"`
	ID                    string                     `xml:"id"`
	SelectFields          itemList[string]           `xml:"select_fields"`
	LinkNameToFieldsArray itemList[LinkNameToFields] `xml:"link_name_to_fields_array"`
	TrackView             bool                       `xml:"track_view"`
}

type getEntriesCountRequest struct {
	XMLName    xml.Name `xml:"tns:get_entries_count"`
	Session    string   `xml:"session"`
	ModuleName string   `xml:"module_name"`
	Query      string   `xml:"query"`
	Deleted    bool     `xml:"deleted"`
}

type setEntryRequest struct {
	XMLName       xml.Name            `xml:"tns:set_entry"`
	Session       string              `xml:"session"`
	ModuleName    string              `xml:"module_name"`
	NameValueList itemList[NameValue] `xml:"name_value_list"`
}

type setRelationshipRequest struct {
	XMLName       xml.Name            `xml:"tns:set_relationship"`
	Session       string              `xml:"session"`
	ModuleName    string              `xml:"module_name"`
	ModuleID      string              `xml:"module_id"`
	LinkFieldName string              `xml:"link_field_name"`
	RelatedIDs    itemList[string]    `xml:"related_ids"`
	NameValueList itemList[NameValue] `xml:"name_value_list"`
	Delete        int                 `xml:"delete"`
}

type getAvailableModulesRequest struct {
	XMLName xml.Name `xml:"tns:get_available_modules"`
	Session string   `xml:"session"`
	Filter  string   `xml:"filter"`
}

type getModuleFieldsRequest struct {
	XMLName    xml.Name `xml:"tns:get_module_fields"`
	Session    string   `xml:"session"`
	ModuleName string   `xml:"module_name"`
}
