package soap

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// ErrNoReturn is returned when a response carries neither a fault nor a
// <return> element.
var ErrNoReturn = errors.New("soap: response has no return element")

// Fault represents a SOAP 1.1 fault.
type Fault struct {
	// Code is the fault code (e.g., "SOAP-ENV:Client", "SOAP-ENV:Server").
	Code string

	// String is the human-readable fault reason.
	String string

	// Actor identifies the node that raised the fault, if any.
	Actor string

	// Detail is the raw content of the <detail> element.
	Detail string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	var parts []string
	if f.Code != "" {
		parts = append(parts, f.Code)
	}
	if f.String != "" {
		parts = append(parts, f.String)
	}
	if d := strings.TrimSpace(f.Detail); d != "" {
		parts = append(parts, "detail="+d)
	}
	return "soap fault: " + strings.Join(parts, ": ")
}

// IsClient returns true if the fault blames the request (bad parameters,
// unknown module, malformed query).
func (f *Fault) IsClient() bool {
	return localName(f.Code) == "Client"
}

// IsServer returns true if the fault was raised by a server-side failure.
func (f *Fault) IsServer() bool {
	return localName(f.Code) == "Server"
}

func localName(code string) string {
	if i := strings.LastIndex(code, ":"); i >= 0 {
		return code[i+1:]
	}
	return code
}

// IsFault returns true if the error is a SOAP Fault.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}

// ParseFault parses a SOAP response and returns a Fault if present.
// Returns nil if the response does not contain a fault.
func ParseFault(data []byte) (*Fault, error) {
	// Quick check if this might be a fault
	if !bytes.Contains(data, []byte(":Fault")) &&
		!bytes.Contains(data, []byte("<Fault")) {
		return nil, nil
	}

	var env faultEnvelope
	if err := newDecoder(data).Decode(&env); err != nil {
		return nil, fmt.Errorf("parse fault: %w", err)
	}

	f := env.Body.Fault
	if f == nil || (f.Code == "" && f.String == "") {
		return nil, nil
	}

	return &Fault{
		Code:   strings.TrimSpace(f.Code),
		String: strings.TrimSpace(f.String),
		Actor:  strings.TrimSpace(f.Actor),
		Detail: f.Detail.Inner,
	}, nil
}

// CheckFault parses a response and returns an error if it contains a fault.
func CheckFault(data []byte) error {
	fault, err := ParseFault(data)
	if err != nil {
		return err
	}
	if fault != nil {
		return fault
	}
	return nil
}

// faultEnvelope is the XML structure for parsing SOAP 1.1 faults.
type faultEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault *struct {
			Code   string `xml:"faultcode"`
			String string `xml:"faultstring"`
			Actor  string `xml:"faultactor"`
			Detail struct {
				Inner string `xml:",innerxml"`
			} `xml:"detail"`
		} `xml:"Fault"`
	} `xml:"Body"`
}
