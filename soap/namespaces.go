package soap

// XML Namespace URIs for SOAP 1.1 RPC messages.
const (
	// NsEnvelope is the SOAP 1.1 envelope namespace.
	NsEnvelope = "http://schemas.xmlsoap.org/soap/envelope/"

	// NsEncoding is the SOAP 1.1 encoding namespace.
	NsEncoding = "http://schemas.xmlsoap.org/soap/encoding/"

	// NsXsd is the XML Schema namespace.
	NsXsd = "http://www.w3.org/2001/XMLSchema"

	// NsXsi is the XML Schema Instance namespace.
	NsXsi = "http://www.w3.org/2001/XMLSchema-instance"

	// NsSugarCRM is the target namespace of the SugarCRM SOAP service.
	NsSugarCRM = "http://www.sugarcrm.com/sugarcrm"
)

// Procedure names exposed by the SugarCRM SOAP service.
const (
	OperationLogin               = "login"
	OperationGetEntryList        = "get_entry_list"
	OperationGetEntry            = "get_entry"
	OperationGetEntriesCount     = "get_entries_count"
	OperationSetEntry            = "set_entry"
	OperationSetRelationship     = "set_relationship"
	OperationGetAvailableModules = "get_available_modules"
	OperationGetModuleFields     = "get_module_fields"
)

// ActionFor returns the SOAPAction header value for an operation.
func ActionFor(namespace, operation string) string {
	return namespace + "/" + operation
}
