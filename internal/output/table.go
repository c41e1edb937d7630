package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jbweber/zpoolctl/api/v1alpha1"
	"github.com/jbweber/zpoolctl/internal/catalog"
	"github.com/jbweber/zpoolctl/internal/inventory"
	"github.com/jbweber/zpoolctl/internal/zpool"
)

// TableFormatter formats resources as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

func (f *TableFormatter) table(header string, write func(w *tabwriter.Writer)) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, header)
	}
	write(w)

	_ = w.Flush()
	return buf.String()
}

// FormatPool formats a Pool manifest as a single row.
func (f *TableFormatter) FormatPool(p *v1alpha1.Pool) (string, error) {
	return f.table("NAME\tRAID\tDISKS\tPHASE\tHEALTH\tSIZE\tFREE", func(w *tabwriter.Writer) {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, dash(p.Spec.Raid), dash(strings.Join(p.Spec.Disks, ",")),
			dash(string(p.Status.Phase)), dash(p.Status.Health), dash(p.Status.Size), dash(p.Status.Free))
	}), nil
}

// FormatPools formats pool records as a table.
func (f *TableFormatter) FormatPools(pools []inventory.PoolRecord) (string, error) {
	if len(pools) == 0 {
		return "No pools found\n", nil
	}

	return f.table("NAME\tSIZE\tFREE\tFRAG\tHEALTH\tALTROOT", func(w *tabwriter.Writer) {
		for _, p := range pools {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.Name, dash(p.Size), dash(p.Free), dash(p.Frag), dash(p.Status), dash(p.AltRoot))
		}
	}), nil
}

// FormatDisks formats disks as a table with partitions indented under
// their disk, the way lsblk draws its tree.
func (f *TableFormatter) FormatDisks(disks []inventory.DiskRecord) (string, error) {
	if len(disks) == 0 {
		return "No disks found\n", nil
	}

	return f.table("NAME\tFSTYPE\tSIZE\tMOUNTPOINT", func(w *tabwriter.Writer) {
		for _, d := range disks {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, dash(d.FSType), dash(d.Size), mount(d.MountPoint))
			for i, c := range d.Children {
				branch := "├─"
				if i == len(d.Children)-1 {
					branch = "└─"
				}
				_, _ = fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", branch, c.Name, dash(c.FSType), dash(c.Size), mount(c.MountPoint))
			}
		}
	}), nil
}

// FormatInventory formats a snapshot as the pools table followed by the
// disks table.
func (f *TableFormatter) FormatInventory(snap *inventory.Snapshot) (string, error) {
	view := inventoryViewOf(snap)
	pools, _ := f.FormatPools(view.Pools)
	disks, _ := f.FormatDisks(view.Disks)
	return pools + "\n" + disks, nil
}

// FormatProperties formats catalog entries as a table.
func (f *TableFormatter) FormatProperties(props []catalog.Property) (string, error) {
	if len(props) == 0 {
		return "No properties found\n", nil
	}

	return f.table("NAME\tKIND\tDEFAULT\tMODES\tOS\tCOMPATIBLE\tREADONLY", func(w *tabwriter.Writer) {
		for _, p := range props {
			modes := make([]string, len(p.Modes))
			for i, m := range p.Modes {
				modes[i] = string(m)
			}

			compatible := "-"
			if p.Kind == catalog.KindFeature {
				compatible = fmt.Sprintf("%t", p.Compatible)
			}
			readOnly := "-"
			if p.ReadOnly != nil {
				readOnly = fmt.Sprintf("%t", *p.ReadOnly)
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				p.Name, p.Kind, dash(p.Default), strings.Join(modes, ","), dash(p.OSFamily), compatible, readOnly)
		}
	}), nil
}

// FormatRaidProfiles formats raid profiles as a table.
func (f *TableFormatter) FormatRaidProfiles(profiles []catalog.RaidProfile) (string, error) {
	return f.table("NAME\tMIN-DEVICES\tTOKEN", func(w *tabwriter.Writer) {
		for _, rp := range profiles {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", rp.Name, rp.MinDevices, dash(rp.Token))
		}
	}), nil
}

// FormatExecution formats a command result as a table row followed by any
// captured output.
func (f *TableFormatter) FormatExecution(exec *zpool.Execution) (string, error) {
	v := viewOf(exec)

	out := f.table("COMMAND\tOUTCOME\tEXIT\tDURATION", func(w *tabwriter.Writer) {
		exit, duration := "-", "-"
		if v.Executed {
			exit = fmt.Sprintf("%d", v.ExitCode)
			duration = v.Duration.Round(time.Millisecond).String()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Command, v.Outcome, exit, duration)
	})

	if s := strings.TrimSpace(v.Stdout); s != "" {
		out += s + "\n"
	}
	if s := strings.TrimSpace(v.Stderr); s != "" {
		out += s + "\n"
	}
	if v.Error != "" {
		out += "error: " + v.Error + "\n"
	}
	return out, nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func mount(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}
