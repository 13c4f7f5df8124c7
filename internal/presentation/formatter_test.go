package presentation

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/envreg/internal/envs/fakes"
	"github.com/zjrosen/envreg/internal/envservice"
)

func sampleSpecs() []SpecDTO {
	return FromSpecViews([]envservice.SpecView{
		{ID: "Fake-v0", Name: "Fake", Version: 0, EntryPoint: fakes.EntryPoint(fakes.TypeFakeEnvironment)},
		{ID: "Fake-v1", Name: "Fake", Version: 1, EntryPoint: fakes.EntryPoint(fakes.TypeFakeEnvironment), Kwargs: map[string]any{"time_limit": 20, "action_shape": []int{2}}},
	})
}

func TestFormatSpecs_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatSpecs(sampleSpecs(), FormatJSON))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "Fake-v0", got[0]["id"])
	require.Equal(t, map[string]any{}, got[0]["kwargs"], "empty kwargs should render as an object")
	require.Equal(t, 20.0, got[1]["kwargs"].(map[string]any)["time_limit"])
}

func TestFormatSpecs_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatSpecs(sampleSpecs(), FormatTable))

	out := buf.String()
	require.Contains(t, out, "ENTRY POINT")
	require.Contains(t, out, "Fake-v1")
	require.Contains(t, out, "action_shape=[2] time_limit=20")
	require.Less(t, strings.Index(out, "Fake-v0"), strings.Index(out, "Fake-v1"), "rows keep registration order")
}

func TestFormatSpecs_UnknownFormat(t *testing.T) {
	err := NewFormatter(&bytes.Buffer{}).FormatSpecs(nil, "xml")
	require.ErrorContains(t, err, `unknown format "xml"`)
}

func TestFromSpecView_CopiesKwargs(t *testing.T) {
	view := envservice.SpecView{ID: "Fake-v1", Kwargs: map[string]any{"time_limit": 20}}
	dto := FromSpecView(view)
	dto.Kwargs["time_limit"] = 1
	require.Equal(t, 20, view.Kwargs["time_limit"])
}

func TestFromInstance(t *testing.T) {
	env, err := fakes.NewFakeEnvironment(nil)
	require.NoError(t, err)
	id := uuid.New()

	dto := FromInstance(envservice.Instance{ID: id, EnvID: "Fake-v0", Env: env})
	require.Equal(t, id.String(), dto.InstanceID)
	require.Equal(t, "*fakes.FakeEnvironment", dto.Type)
	require.Equal(t, env.Describe(), dto.Details)

	plain := FromInstance(envservice.Instance{ID: id, EnvID: "Plain-v0", Env: 42})
	require.Equal(t, "int", plain.Type)
	require.Nil(t, plain.Details)
}
