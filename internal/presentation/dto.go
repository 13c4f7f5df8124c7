package presentation

import (
	"fmt"
	"maps"

	"github.com/zjrosen/envreg/internal/envservice"
)

// SpecDTO is the JSON form of a registered environment.
type SpecDTO struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Version    int            `json:"version"`
	EntryPoint string         `json:"entry_point"`
	Kwargs     map[string]any `json:"kwargs"`
}

// ParseDTO is the JSON form of a parsed identifier.
type ParseDTO struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// InstanceDTO summarises a constructed environment.
type InstanceDTO struct {
	InstanceID string         `json:"instance_id"`
	EnvID      string         `json:"env_id"`
	Type       string         `json:"type"`
	Details    map[string]any `json:"details,omitempty"`
}

// Describer is implemented by environments that can summarise themselves.
type Describer interface {
	Describe() map[string]any
}

// FromSpecView converts a service view to its DTO. Kwargs is never nil so
// JSON output always carries an object.
func FromSpecView(view envservice.SpecView) SpecDTO {
	kwargs := make(map[string]any, len(view.Kwargs))
	maps.Copy(kwargs, view.Kwargs)
	return SpecDTO{
		ID:         view.ID,
		Name:       view.Name,
		Version:    view.Version,
		EntryPoint: view.EntryPoint,
		Kwargs:     kwargs,
	}
}

// FromSpecViews converts a list of views, preserving order.
func FromSpecViews(views []envservice.SpecView) []SpecDTO {
	dtos := make([]SpecDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, FromSpecView(v))
	}
	return dtos
}

// FromInstance converts a constructed instance.
func FromInstance(inst envservice.Instance) InstanceDTO {
	dto := InstanceDTO{
		InstanceID: inst.ID.String(),
		EnvID:      inst.EnvID,
		Type:       fmt.Sprintf("%T", inst.Env),
	}
	if d, ok := inst.Env.(Describer); ok {
		dto.Details = d.Describe()
	}
	return dto
}
