package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/droverhq/drover-cli/client"
)

// printResourceList renders resources as a table of the given columns, or
// as a JSON array when json output is selected. JSON keeps every field the
// master sent, in document order; the table shows the chosen columns only.
func (r *Runner) printResourceList(resources []*client.Resource, columns []string) error {
	if r.outputFormat() == "json" {
		return printJSON(resources)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(columns)
	for _, res := range resources {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			row = append(row, cellValue(res, col))
		}
		table.Append(row)
	}
	table.Render()

	fmt.Printf("\n%d found\n", len(resources))
	return nil
}

// printResource renders a single resource, all fields in document order.
func (r *Runner) printResource(res *client.Resource) error {
	if r.outputFormat() == "json" {
		return printJSON(res)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	for _, field := range res.Fields() {
		table.Append([]string{field, cellValue(res, field)})
	}
	table.Render()
	return nil
}

// printStrings renders a flat list, one entry per line (or a JSON array).
func (r *Runner) printStrings(values []string) error {
	if r.outputFormat() == "json" {
		return printJSON(values)
	}
	for _, v := range values {
		fmt.Println(v)
	}
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// cellValue renders one field for a table cell. Fields the master did not
// send, and empty ones, show as "-".
func cellValue(res *client.Resource, field string) string {
	if !res.Has(field) {
		return "-"
	}
	if s := res.GetString(field); s != "" {
		return s
	}
	return "-"
}

// ackJob prints the master's acknowledgement for a submitted job and
// records it in the local ledger.
func (r *Runner) ackJob(op, target, jobID string) {
	if jobID == "" {
		fmt.Printf("%s %s: accepted\n", op, target)
		return
	}
	fmt.Printf("%s %s: submitted job %s\n", op, target, jobID)
	r.recordSubmission(op, target, jobID)
}
