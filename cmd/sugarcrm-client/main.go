// Command sugarcrm-client is an example SugarCRM SOAP client.
//
// Connection settings come from SUGARCRM_* environment variables and can be
// overridden with flags. Password can be provided via:
//   - -pass flag (least secure, visible in process list)
//   - SUGARCRM_PASSWORD environment variable (recommended)
//   - stdin prompt (if neither flag nor env var is set)
//
// Usage:
//
//	sugarcrm-client -url <wsdl url> -user <username> -module <module> [action]
//
// Examples:
//
//	# List up to 20 contacts named Doe
//	sugarcrm-client -url https://crm/service/v4_1/soap.php?wsdl -user admin \
//	    -module Contacts -query "contacts.last_name='Doe'" -max 20
//
//	# Fetch one record, count records, inspect modules
//	sugarcrm-client -module Contacts -id 1a2b3c
//	sugarcrm-client -module Contacts -count -query "contacts.deleted=0"
//	sugarcrm-client -modules
//	sugarcrm-client -module Contacts -fields
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/smnsjas/go-sugarcrm/client"
	"github.com/smnsjas/go-sugarcrm/internal/log"
	"golang.org/x/term"
)

// errUsage marks errors that should also print flag usage.
var errUsage = errors.New("usage")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			flag.Usage()
		}
		os.Exit(1)
	}
}

func run() error {
	url := flag.String("url", "", "SOAP endpoint or WSDL URL (default: SUGARCRM_URL)")
	username := flag.String("user", "", "CRM username (default: SUGARCRM_USERNAME)")
	password := flag.String("pass", "", "CRM password (use SUGARCRM_PASSWORD env var instead)")
	module := flag.String("module", "", "Module name, e.g. Contacts")
	query := flag.String("query", "", "WHERE clause without the WHERE keyword")
	id := flag.String("id", "", "Fetch a single record by ID")
	count := flag.Bool("count", false, "Count matching records instead of listing them")
	modules := flag.Bool("modules", false, "List available modules")
	filter := flag.String("filter", "default", "Module filter for -modules: default, mobile, all")
	fields := flag.Bool("fields", false, "List fields of -module")
	maxResults := flag.Int("max", 1, "Maximum records to list")
	selectFields := flag.String("select", "", "Comma-separated fields to return (default: all)")
	insecure := flag.Bool("insecure", false, "Skip TLS certificate verification")
	logLevel := flag.String("loglevel", "", "Log level: debug, info, warn, error (empty = no logging)")
	logFile := flag.String("logfile", "", "Write logs to a rotating file instead of stderr")

	flag.Parse()

	logger, closer, err := log.New(log.Options{Level: *logLevel, File: *logFile})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	if !*modules && *module == "" {
		return fmt.Errorf("%w: -module is required (or use -modules)", errUsage)
	}

	cfg, err := client.ConfigFromEnv()
	if err != nil {
		return err
	}
	if *url != "" {
		cfg.URL = *url
	}
	if *username != "" {
		cfg.Username = *username
	}
	if *insecure {
		cfg.InsecureSkipVerify = true
	}
	// Get password from: flag > env var > stdin prompt
	if *password != "" {
		cfg.Password = *password
	} else if cfg.Password == "" && cfg.Username != "" {
		cfg.Password = promptPassword()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c, err := client.New(ctx, cfg, client.WithLogger(logger))
	if err != nil {
		return err
	}
	defer c.CloseIdleConnections()

	var out any
	switch {
	case *modules:
		out, err = c.ListAvailableModules(ctx, client.ModuleFilter(*filter))
	case *fields:
		out, err = c.ListModuleFields(ctx, *module)
	case *count:
		out, err = c.CountRecords(ctx, *module, *query)
	case *id != "":
		var res *client.GetEntryResult
		res, err = c.GetRecordByID(ctx, *module, *id, client.WithEntryFields(splitList(*selectFields)...))
		if err == nil {
			out = client.FlattenAll(res.EntryList)
		}
	default:
		var res *client.EntryListResult
		res, err = c.QueryRecords(ctx, *module, *query,
			client.WithMaxResults(*maxResults),
			client.WithSelectFields(splitList(*selectFields)...))
		if err == nil {
			out = client.FlattenAll(res.EntryList)
		}
	}
	if err != nil {
		return err
	}

	return writeJSON(os.Stdout, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// promptPassword reads the password from the terminal without echo, or a
// line from stdin when it is piped.
func promptPassword() string {
	fmt.Fprint(os.Stderr, "Password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		passBytes, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return ""
		}
		return string(passBytes)
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}
