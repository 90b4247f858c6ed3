package integration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/status-bot/internal/domain"
)

// Result is the outcome of one integration in a RunAll.
type Result struct {
	Name   string                `json:"name"`
	Status domain.ComputedStatus `json:"status"`
	Error  string                `json:"error,omitempty"`
}

// Registry holds the known integrations by name. It is built once at startup
// and read-only afterwards.
type Registry struct {
	logger *slog.Logger
	byName map[string]Integration
	order  []string
}

// NewRegistry registers integrations. Names must be unique.
func NewRegistry(logger *slog.Logger, integrations ...Integration) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{logger: logger, byName: make(map[string]Integration, len(integrations))}
	for _, in := range integrations {
		name := in.Name()
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("integration.NewRegistry: duplicate integration %q", name)
		}
		r.byName[name] = in
		r.order = append(r.order, name)
	}
	return r, nil
}

// Names lists registered integrations in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Resolve checks that every name is registered.
// Returns domain.ErrValidation naming every unknown integration.
func (r *Registry) Resolve(names []string) ([]Integration, error) {
	out := make([]Integration, 0, len(names))
	var unknown []string
	for _, name := range names {
		in, ok := r.byName[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		out = append(out, in)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown integrations %v (known: %v)", domain.ErrValidation, unknown, r.order)
	}
	return out, nil
}

// RunAll updates each named integration in order. A failing integration does
// not stop the others; every failure is logged and the returned error joins
// them under a message listing the failed names.
func (r *Registry) RunAll(ctx context.Context, names []string, opts Options) ([]Result, error) {
	integrations, err := r.Resolve(names)
	if err != nil {
		return nil, fmt.Errorf("integration.Registry.RunAll: %w", err)
	}

	results := make([]Result, 0, len(integrations))
	var failed []string
	var errs []error
	for _, in := range integrations {
		r.logger.InfoContext(ctx, "updating integration", "integration", in.Name(), "force", opts.Force)
		s, err := in.Update(ctx, opts)
		res := Result{Name: in.Name(), Status: s}
		if err != nil {
			r.logger.ErrorContext(ctx, "integration update failed", "integration", in.Name(), "error", err)
			res.Error = err.Error()
			failed = append(failed, in.Name())
			errs = append(errs, fmt.Errorf("%s: %w", in.Name(), err))
		} else {
			r.logger.InfoContext(ctx, "integration updated", "integration", in.Name(), "updated", s.Updated, "reason", s.Reason)
		}
		results = append(results, res)
	}
	if len(failed) > 0 {
		return results, fmt.Errorf("one or more integrations failed to update: %v: %w", failed, errors.Join(errs...))
	}
	return results, nil
}
