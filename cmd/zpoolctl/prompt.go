package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"

	"github.com/jbweber/zpoolctl/internal/inventory"
)

// success prints a status line for table output. Machine-readable formats
// get only the formatted result.
func success(format string, a ...any) {
	if tableOutput() {
		color.Green("✓ "+format, a...)
	}
}

func warning(format string, a ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(os.Stderr, "Warning: "+format+"\n", a...)
}

// confirm asks a yes/no question, defaulting to no.
func confirm(message string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return ok, nil
}

// confirmDestructive asks for confirmation and then for the pool name to be
// typed back.
func confirmDestructive(action, pool string) (bool, error) {
	color.Red("\n⚠️  WARNING: %s pool %s", action, pool)

	ok, err := confirm("Do you want to continue?")
	if err != nil || !ok {
		return false, err
	}

	typed := ""
	prompt := &survey.Input{
		Message: fmt.Sprintf("Type the pool name (%s) to confirm:", pool),
	}
	if err := survey.AskOne(prompt, &typed); err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return strings.TrimSpace(typed) == pool, nil
}

// pickDisks lets the operator choose among disks with nothing mounted.
func pickDisks(disks []inventory.DiskRecord) ([]string, error) {
	options := availableDisks(disks)
	if len(options) == 0 {
		return nil, fmt.Errorf("no unmounted disks available")
	}

	labels := make([]string, len(options))
	for i, d := range options {
		labels[i] = fmt.Sprintf("%s (%s)", d.Name, d.Size)
	}

	var picked []int
	prompt := &survey.MultiSelect{
		Message: "Select disks for the pool:",
		Options: labels,
	}
	if err := survey.AskOne(prompt, &picked, survey.WithValidator(survey.Required)); err != nil {
		return nil, fmt.Errorf("failed to select disks: %w", err)
	}

	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = options[idx].Name
	}
	return out, nil
}

// availableDisks returns disks where neither the disk nor any partition is
// mounted.
func availableDisks(disks []inventory.DiskRecord) []inventory.DiskRecord {
	var out []inventory.DiskRecord
	for _, d := range disks {
		if !d.Mounted() {
			out = append(out, d)
		}
	}
	return out
}

// parseAssignments parses name=value pairs. Values may contain '='.
func parseAssignments(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected name=value)", pair)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("property %s given more than once", name)
		}
		out[name] = value
	}
	return out, nil
}
