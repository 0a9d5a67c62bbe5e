package soap

import (
	"encoding/xml"
)

// Envelope represents a SOAP 1.1 envelope for RPC-style messages.
type Envelope struct {
	XMLName xml.Name `xml:"SOAP-ENV:Envelope"`

	// Namespace declarations
	NsSoap     string `xml:"xmlns:SOAP-ENV,attr"`
	NsEncoding string `xml:"xmlns:SOAP-ENC,attr"`
	NsXsd      string `xml:"xmlns:xsd,attr"`
	NsXsi      string `xml:"xmlns:xsi,attr"`
	NsTarget   string `xml:"xmlns:tns,attr,omitempty"`

	EncodingStyle string `xml:"SOAP-ENV:encodingStyle,attr,omitempty"`

	Header *Header `xml:"SOAP-ENV:Header,omitempty"`
	Body   *Body   `xml:"SOAP-ENV:Body"`
}

// Header represents the optional SOAP header. SugarCRM ignores it, but raw
// header blocks can be attached for gateways that inspect them.
type Header struct {
	Content []byte `xml:",innerxml"`
}

// Body represents the SOAP body.
type Body struct {
	Content []byte `xml:",innerxml"`
}

// NewEnvelope creates a new SOAP envelope with required namespace declarations.
func NewEnvelope() *Envelope {
	return &Envelope{
		NsSoap:     NsEnvelope,
		NsEncoding: NsEncoding,
		NsXsd:      NsXsd,
		NsXsi:      NsXsi,
		Body:       &Body{},
	}
}

// WithTargetNamespace declares the service namespace under the "tns" prefix.
func (e *Envelope) WithTargetNamespace(ns string) *Envelope {
	e.NsTarget = ns
	return e
}

// WithEncodingStyle sets the SOAP-ENV:encodingStyle attribute.
func (e *Envelope) WithEncodingStyle(style string) *Envelope {
	e.EncodingStyle = style
	return e
}

// WithHeader sets raw SOAP header content.
func (e *Envelope) WithHeader(content []byte) *Envelope {
	if len(content) == 0 {
		e.Header = nil
		return e
	}
	e.Header = &Header{Content: content}
	return e
}

// WithBody sets the SOAP body content.
func (e *Envelope) WithBody(content []byte) *Envelope {
	e.Body.Content = content
	return e
}

// Marshal serializes the envelope to XML, including the XML declaration.
func (e *Envelope) Marshal() ([]byte, error) {
	out, err := xml.Marshal(e)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// MarshalIndent serializes the envelope to indented XML.
func (e *Envelope) MarshalIndent(prefix, indent string) ([]byte, error) {
	return xml.MarshalIndent(e, prefix, indent)
}
