package zpool

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jbweber/zpoolctl/api/v1alpha1"
	"github.com/jbweber/zpoolctl/internal/status"
)

// RequestFromPool turns a loaded manifest into a create request. Manifest
// properties become a full override set; a manifest without properties
// uses the catalog defaults.
func (b *Builder) RequestFromPool(p *v1alpha1.Pool) (CreateRequest, error) {
	req := CreateRequest{
		Name:        p.Name,
		Disks:       p.Spec.Disks,
		RaidProfile: p.GetRaid(),
		Force:       p.Spec.Force,
	}

	if len(p.Spec.Properties) == 0 {
		return req, nil
	}

	overrides, err := b.catalog.WithValues(p.Spec.Properties)
	if err != nil {
		return CreateRequest{}, reject("create", ReasonUnknownProperty, "%v", err)
	}
	req.Overrides = overrides

	for _, o := range overrides {
		if _, given := p.Spec.Properties[o.Name]; given && b.neverEmitted(o) {
			req.Ignored = append(req.Ignored, o.Name)
			log.Warn().
				Str("component", "zpool").
				Str("pool", p.Name).
				Str("property", o.Name).
				Str("value", o.Default).
				Str("osFamily", b.osFamily).
				Msg("Override is not passed to zpool create")
		}
	}
	return req, nil
}

// CreatePool runs create for a manifest and records the outcome in the
// pool's status. Dry runs leave the status alone.
func (m *Manager) CreatePool(ctx context.Context, p *v1alpha1.Pool) (*Execution, error) {
	req, err := m.builder.RequestFromPool(p)
	if err != nil {
		status.TransitionToFailed(p, string(ReasonOf(err)), err)
		return nil, err
	}

	args, err := m.builder.Create(req)
	if err != nil {
		status.TransitionToFailed(p, string(ReasonOf(err)), err)
		return nil, err
	}

	if m.dryRun {
		return m.mutate(ctx, req.Name, args)
	}

	if err := status.TransitionToCreating(p); err != nil {
		return nil, err
	}

	exec, err := m.mutate(ctx, req.Name, args)
	if err != nil {
		status.TransitionToFailed(p, "CommandFailed", err)
		return exec, err
	}

	if err := status.MarkCreated(p, exec.Command()); err != nil {
		return exec, err
	}
	status.MarkWarnings(p, strings.TrimSpace(exec.Result.Stderr))
	return exec, nil
}
