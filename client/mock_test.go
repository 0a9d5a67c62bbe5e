package client

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/smnsjas/go-sugarcrm/soap"
	"github.com/smnsjas/go-sugarcrm/soap/transport"
	"github.com/stretchr/testify/require"
)

const testSessionID = "8e0a5c1f-sess"

// capturedCall is a decoded SOAP request as the fake CRM saw it.
type capturedCall struct {
	Operation string
	Action    string
	// Params maps scalar parameters (and user_auth.* children) to text.
	Params map[string]string
	// Items maps array parameters to their items; name/value items are
	// rendered as "name=value", with list values joined by commas.
	Items map[string][]string
}

// fakeCRM is an httptest SOAP server that mimics the SugarCRM service.
type fakeCRM struct {
	t      *testing.T
	server *httptest.Server

	mu      sync.Mutex
	calls   []capturedCall
	returns map[string]string // operation -> inner XML of <return>
	faults  map[string]string // operation -> faultstring
	status  int               // forced HTTP status when non-zero
}

func newFakeCRM(t *testing.T) *fakeCRM {
	t.Helper()

	f := &fakeCRM{
		t: t,
		returns: map[string]string{
			soap.OperationLogin: `<id xsi:type="xsd:string">` + testSessionID + `</id>
<module_name xsi:type="xsd:string">Users</module_name>
<name_value_list SOAP-ENC:arrayType="tns:name_value[0]" xsi:type="tns:name_value_list"></name_value_list>`,
		},
		faults: map[string]string{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

// wsdlURL is the configured URL form, as copied from a SugarCRM install.
func (f *fakeCRM) wsdlURL() string {
	return f.server.URL + "/service/v4_1/soap.php?wsdl"
}

func (f *fakeCRM) config() Config {
	cfg := DefaultConfig()
	cfg.URL = f.wsdlURL()
	cfg.Username = "admin"
	cfg.Password = "s3cret"
	return cfg
}

func (f *fakeCRM) setReturn(operation, inner string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.returns[operation] = inner
}

func (f *fakeCRM) setFault(operation, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[operation] = message
}

func (f *fakeCRM) setStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func (f *fakeCRM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCRM) lastCall() capturedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.calls, "no calls recorded")
	return f.calls[len(f.calls)-1]
}

// newClient connects a Client to the fake CRM.
func (f *fakeCRM) newClient() *Client {
	f.t.Helper()
	c, err := New(context.Background(), f.config())
	require.NoError(f.t, err)
	return c
}

func (f *fakeCRM) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		f.t.Errorf("read request: %v", err)
		return
	}
	if r.URL.RawQuery != "" {
		f.t.Errorf("request should not carry a query, got %q", r.URL.RawQuery)
	}

	call := parseCall(f.t, body)
	call.Action = r.Header.Get(transport.HeaderSOAPAction)

	f.mu.Lock()
	f.calls = append(f.calls, call)
	status := f.status
	fault, hasFault := f.faults[call.Operation]
	ret, hasReturn := f.returns[call.Operation]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "text/xml; charset=ISO-8859-1")

	switch {
	case status != 0:
		w.WriteHeader(status)
	case hasFault:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprintf(w, faultTemplate, fault)
	case hasReturn:
		_, _ = fmt.Fprintf(w, responseTemplate, call.Operation, ret, call.Operation)
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprintf(w, faultTemplate, "no canned response for "+call.Operation)
	}
}

const responseTemplate = `<?xml version="1.0" encoding="ISO-8859-1"?>
<SOAP-ENV:Envelope SOAP-ENV:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/" xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:SOAP-ENC="http://schemas.xmlsoap.org/soap/encoding/" xmlns:tns="http://www.sugarcrm.com/sugarcrm">
<SOAP-ENV:Body><ns1:%sResponse xmlns:ns1="http://www.sugarcrm.com/sugarcrm"><return>%s</return></ns1:%sResponse></SOAP-ENV:Body>
</SOAP-ENV:Envelope>`

const faultTemplate = `<?xml version="1.0" encoding="ISO-8859-1"?>
<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">
<SOAP-ENV:Body><SOAP-ENV:Fault><faultcode>SOAP-ENV:Server</faultcode><faultactor></faultactor><faultstring>%s</faultstring><detail></detail></SOAP-ENV:Fault></SOAP-ENV:Body>
</SOAP-ENV:Envelope>`

// parseCall decodes Envelope > Body > operation > params.
func parseCall(t *testing.T, body []byte) capturedCall {
	t.Helper()

	call := capturedCall{
		Params: map[string]string{},
		Items:  map[string][]string{},
	}

	dec := xml.NewDecoder(bytes.NewReader(body))

	var (
		stack      []string
		hasChild   []bool
		text       strings.Builder
		itemFields map[string]string
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)

		switch tk := tok.(type) {
		case xml.StartElement:
			if len(hasChild) > 0 {
				hasChild[len(hasChild)-1] = true
			}
			stack = append(stack, tk.Name.Local)
			hasChild = append(hasChild, false)
			text.Reset()

			switch len(stack) {
			case 3:
				call.Operation = tk.Name.Local
			case 5:
				if tk.Name.Local == "item" {
					itemFields = map[string]string{}
				}
			}

		case xml.CharData:
			text.Write(tk)

		case xml.EndElement:
			depth := len(stack)
			name := stack[depth-1]
			leaf := !hasChild[depth-1]
			value := strings.TrimSpace(text.String())

			switch {
			case depth == 4 && leaf:
				call.Params[name] = value
			case depth == 5 && name == "item" && leaf:
				call.Items[stack[3]] = append(call.Items[stack[3]], value)
			case depth == 5 && name == "item":
				call.Items[stack[3]] = append(call.Items[stack[3]], itemFields["name"]+"="+itemFields["value"])
			case depth == 5 && leaf:
				call.Params[stack[3]+"."+name] = value
			case depth == 6 && leaf:
				itemFields[name] = value
			case depth == 7 && leaf:
				if prev := itemFields[stack[5]]; prev != "" {
					value = prev + "," + value
				}
				itemFields[stack[5]] = value
			}

			stack = stack[:depth-1]
			hasChild = hasChild[:depth-1]
			text.Reset()
		}
	}

	return call
}
