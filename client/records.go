package client

import (
	"context"
	"sort"

	"github.com/smnsjas/go-sugarcrm/soap"
)

// RelationshipLinkField is the link used by SetRelationship.
const RelationshipLinkField = "contacts"

// ModuleFilter selects which modules get_available_modules reports.
type ModuleFilter string

// Filters understood by the service. Other values are passed through as-is
// and rejected remotely.
const (
	FilterDefault ModuleFilter = "default"
	FilterMobile  ModuleFilter = "mobile"
	FilterAll     ModuleFilter = "all"
)

type queryParams struct {
	selectFields []string
	linkFields   []LinkNameToFields
	maxResults   int
	offset       int
	orderBy      string
}

// QueryOption adjusts a QueryRecords call.
type QueryOption func(*queryParams)

// WithSelectFields limits the returned fields. The default is all fields.
func WithSelectFields(fields ...string) QueryOption {
	return func(p *queryParams) {
		p.selectFields = fields
	}
}

// WithMaxResults sets max_results (default 1).
func WithMaxResults(n int) QueryOption {
	return func(p *queryParams) {
		p.maxResults = n
	}
}

// WithOffset sets the record offset to start from (default 0).
func WithOffset(n int) QueryOption {
	return func(p *queryParams) {
		p.offset = n
	}
}

// WithLinkFields also returns fields of records related through link, e.g.
// WithLinkFields("email_addresses", "email_address", "primary_address").
// It may be given once per link.
func WithLinkFields(link string, fields ...string) QueryOption {
	return func(p *queryParams) {
		p.linkFields = append(p.linkFields, LinkNameToFields{Name: link, Value: fields})
	}
}

// WithOrderBy sets the ORDER BY clause without the "ORDER BY" keywords.
func WithOrderBy(orderBy string) QueryOption {
	return func(p *queryParams) {
		p.orderBy = orderBy
	}
}

type entryParams struct {
	selectFields []string
	linkFields   []LinkNameToFields
	trackView    bool
}

// EntryOption adjusts a GetRecordByID call.
type EntryOption func(*entryParams)

// WithEntryFields limits the returned fields. The default is all fields.
func WithEntryFields(fields ...string) EntryOption {
	return func(p *entryParams) {
		p.selectFields = fields
	}
}

// WithEntryLinkFields is WithLinkFields for GetRecordByID.
func WithEntryLinkFields(link string, fields ...string) EntryOption {
	return func(p *entryParams) {
		p.linkFields = append(p.linkFields, LinkNameToFields{Name: link, Value: fields})
	}
}

// WithTrackView records the fetch in the user's recently viewed list.
func WithTrackView(track bool) EntryOption {
	return func(p *entryParams) {
		p.trackView = track
	}
}

// QueryRecords lists records of module matching query, a WHERE clause without
// the "WHERE" keyword. Deleted records and the favorites-only filter are
// always off. The query is not inspected; malformed queries fail remotely.
func (c *Client) QueryRecords(ctx context.Context, module, query string, opts ...QueryOption) (*EntryListResult, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}

	p := queryParams{maxResults: 1}
	for _, opt := range opts {
		opt(&p)
	}

	req := getEntryListRequest{
		Session:               session,
		ModuleName:            module,
		Query:                 query,
		OrderBy:               p.orderBy,
		Offset:                p.offset,
		SelectFields:          itemList[string]{Items: p.selectFields},
		LinkNameToFieldsArray: itemList[LinkNameToFields]{Items: p.linkFields},
		MaxResults:            p.maxResults,
		Deleted:               0,
		Favorites:             false,
	}

	var res EntryListResult
	if err := c.call(ctx, soap.OperationGetEntryList, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetRecordByID fetches a single record of module by its ID.
func (c *Client) GetRecordByID(ctx context.Context, module, id string, opts ...EntryOption) (*GetEntryResult, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}

	var p entryParams
	for _, opt := range opts {
		opt(&p)
	}

	req := getEntryRequest{
		Session:               session,
		ModuleName:            module,
		ID:                    id,
		SelectFields:          itemList[string]{Items: p.selectFields},
		LinkNameToFieldsArray: itemList[LinkNameToFields]{Items: p.linkFields},
		TrackView:             p.trackView,
	}

	var res GetEntryResult
	if err := c.call(ctx, soap.OperationGetEntry, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CountRecords counts non-deleted records of module matching query.
func (c *Client) CountRecords(ctx context.Context, module, query string) (*EntriesCountResult, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}

	req := getEntriesCountRequest{
		Session:    session,
		ModuleName: module,
		Query:      query,
		Deleted:    false,
	}

	var res EntriesCountResult
	if err := c.call(ctx, soap.OperationGetEntriesCount, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// InsertRecord creates a record, or updates one when fields carry an "id"
// pair. The service decides which; the result holds the record ID either way.
func (c *Client) InsertRecord(ctx context.Context, module string, fields []NameValue) (*SetEntryResult, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}

	req := setEntryRequest{
		Session:       session,
		ModuleName:    module,
		NameValueList: itemList[NameValue]{Items: fields},
	}

	var res SetEntryResult
	if err := c.call(ctx, soap.OperationSetEntry, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetRelationship links relatedIDs to the moduleID record of module through
// the "contacts" link. It only ever creates links.
func (c *Client) SetRelationship(ctx context.Context, module, moduleID string, relatedIDs []string, fields []NameValue) (*SetRelationshipResult, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}

	req := setRelationshipRequest{
		Session:       session,
		ModuleName:    module,
		ModuleID:      moduleID,
		LinkFieldName: RelationshipLinkField,
		RelatedIDs:    itemList[string]{Items: relatedIDs},
		NameValueList: itemList[NameValue]{Items: fields},
		Delete:        0,
	}

	var res SetRelationshipResult
	if err := c.call(ctx, soap.OperationSetRelationship, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListAvailableModules lists the modules visible to the session user. An
// empty filter means FilterDefault.
func (c *Client) ListAvailableModules(ctx context.Context, filter ModuleFilter) (*ModuleList, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}
	if filter == "" {
		filter = FilterDefault
	}

	req := getAvailableModulesRequest{
		Session: session,
		Filter:  string(filter),
	}

	var res ModuleList
	if err := c.call(ctx, soap.OperationGetAvailableModules, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListModuleFields returns field and link metadata for module.
func (c *Client) ListModuleFields(ctx context.Context, module string) (*ModuleFields, error) {
	session, err := c.session()
	if err != nil {
		return nil, err
	}

	req := getModuleFieldsRequest{
		Session:    session,
		ModuleName: module,
	}

	var res ModuleFields
	if err := c.call(ctx, soap.OperationGetModuleFields, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// NameValuesFromMap converts a field map to name/value pairs, sorted by name.
func NameValuesFromMap(fields map[string]string) []NameValue {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]NameValue, 0, len(names))
	for _, name := range names {
		out = append(out, NameValue{Name: name, Value: fields[name]})
	}
	return out
}
