// Package envservice is the application layer over the environment registry.
//
// The domain registry stays free of I/O. Service adds the outer concerns:
// structured logging, OpenTelemetry spans, per-instance ids and manifest
// loading. Errors from the registry pass through unchanged so callers can
// match them with errors.Is, and constructor errors reach the caller as
// the very same value.
package envservice

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/envreg/internal/domain/registry"
	"github.com/zjrosen/envreg/internal/log"
	"github.com/zjrosen/envreg/internal/manifest"
	"github.com/zjrosen/envreg/internal/tracing"
)

// Instance is a constructed environment.
type Instance struct {
	ID    uuid.UUID
	EnvID string
	Env   any
}

// SpecView is a read-only snapshot of a registered EnvSpec.
type SpecView struct {
	ID         string
	Name       string
	Version    int
	EntryPoint string
	Kwargs     registry.Kwargs
}

func newSpecView(spec registry.EnvSpec) SpecView {
	return SpecView{
		ID:         spec.ID(),
		Name:       spec.Name(),
		Version:    spec.Version(),
		EntryPoint: spec.EntryPoint(),
		Kwargs:     spec.Kwargs(),
	}
}

// Service wraps a Registry with logging and tracing.
type Service struct {
	reg    *registry.Registry
	tracer trace.Tracer
	newID  func() uuid.UUID
}

// New creates a Service. A nil tracer disables tracing.
func New(reg *registry.Registry, tracer trace.Tracer) *Service {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return &Service{
		reg:    reg,
		tracer: tracer,
		newID:  uuid.New,
	}
}

// Registry returns the wrapped registry.
func (s *Service) Registry() *registry.Registry {
	return s.reg
}

// Register adds one definition to the registry.
func (s *Service) Register(ctx context.Context, def manifest.EnvironmentDef) error {
	_, span := s.tracer.Start(ctx, tracing.SpanRegister,
		trace.WithAttributes(
			attribute.String(tracing.AttrEnvID, def.ID),
			attribute.String(tracing.AttrEntryPoint, def.EntryPoint),
		),
	)
	defer span.End()

	if err := s.reg.Register(def.ID, def.EntryPoint, registry.Kwargs(def.Kwargs)); err != nil {
		recordError(span, err)
		log.ErrorErr(log.CatRegistry, "register failed", err, "id", def.ID)
		return err
	}

	if spec, err := s.reg.Spec(def.ID); err == nil {
		span.SetAttributes(
			attribute.String(tracing.AttrEnvName, spec.Name()),
			attribute.Int(tracing.AttrEnvVersion, spec.Version()),
		)
	}
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatRegistry, "registered environment", "id", def.ID, "entry_point", def.EntryPoint)
	return nil
}

// Make constructs the environment registered under id. kwargs override
// the registered defaults.
func (s *Service) Make(ctx context.Context, id string, kwargs registry.Kwargs) (Instance, error) {
	inst := Instance{ID: s.newID(), EnvID: id}
	keys := kwargs.Keys()
	slices.Sort(keys)

	_, span := s.tracer.Start(ctx, tracing.SpanMake,
		trace.WithAttributes(
			attribute.String(tracing.AttrEnvID, id),
			attribute.String(tracing.AttrInstanceID, inst.ID.String()),
			attribute.StringSlice(tracing.AttrKwargKeys, keys),
		),
	)
	defer span.End()

	if spec, err := s.reg.Spec(id); err == nil {
		span.AddEvent(tracing.EventSpecResolved, trace.WithAttributes(
			attribute.String(tracing.AttrEntryPoint, spec.EntryPoint()),
			attribute.Int(tracing.AttrEnvVersion, spec.Version()),
		))
	}

	env, err := s.reg.Make(id, kwargs)
	if err != nil {
		recordError(span, err)
		log.ErrorErr(log.CatRegistry, "make failed", err, "id", id, "instance", inst.ID.String())
		return Instance{}, err
	}

	inst.Env = env
	typeName := fmt.Sprintf("%T", env)
	span.AddEvent(tracing.EventConstructed, trace.WithAttributes(
		attribute.String(tracing.AttrInstanceType, typeName),
	))
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatRegistry, "constructed environment", "id", id, "instance", inst.ID.String(), "type", typeName)
	return inst, nil
}

// List returns every registered spec in registration order.
func (s *Service) List() []SpecView {
	ids := s.reg.RegisteredEnvironments()
	views := make([]SpecView, 0, len(ids))
	for _, id := range ids {
		spec, err := s.reg.Spec(id)
		if err != nil {
			// Registrations are never removed, so a listed id always resolves.
			continue
		}
		views = append(views, newSpecView(spec))
	}
	return views
}

// ListByName returns the versions registered under a base name.
func (s *Service) ListByName(name string) []SpecView {
	var views []SpecView
	for _, v := range s.List() {
		if v.Name == name {
			views = append(views, v)
		}
	}
	return views
}

// Spec returns the spec registered under id.
func (s *Service) Spec(id string) (SpecView, error) {
	spec, err := s.reg.Spec(id)
	if err != nil {
		return SpecView{}, err
	}
	return newSpecView(spec), nil
}

// LoadManifests loads each manifest file and registers its definitions,
// in order. It stops at the first failure.
func (s *Service) LoadManifests(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := s.loadManifest(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) loadManifest(ctx context.Context, path string) error {
	ctx, span := s.tracer.Start(ctx, tracing.SpanManifest,
		trace.WithAttributes(attribute.String(tracing.AttrManifestPath, path)),
	)
	defer span.End()

	defs, err := manifest.LoadFiles([]string{path})
	if err != nil {
		recordError(span, err)
		log.ErrorErr(log.CatManifest, "load manifest failed", err, "path", path)
		return err
	}
	span.SetAttributes(attribute.Int(tracing.AttrManifestCount, len(defs)))

	for _, def := range defs {
		if err := s.Register(ctx, def); err != nil {
			recordError(span, err)
			return fmt.Errorf("manifest %s: apply %s: %w", path, def.ID, err)
		}
	}
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatManifest, "applied manifest", "path", path, "environments", len(defs))
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(tracing.AttrErrorKind, ErrorKind(err)))
}

// ErrorKind classifies a registry error for span attributes and CLI output.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, registry.ErrInvalidIdentifier):
		return "invalid_identifier"
	case errors.Is(err, registry.ErrRegistration):
		return "registration"
	case errors.Is(err, registry.ErrUnknownIdentifier):
		return "unknown_identifier"
	case errors.Is(err, registry.ErrEntryPointResolution):
		return "entry_point_resolution"
	default:
		return "construction"
	}
}
