package declarative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowplan/internal/domain"
)

func validFlow() *Flow {
	mappings := domain.NewMappingSet()
	mappings.Set("total", domain.Mapping{Type: domain.MappingDirect, SourceField: "amount"})

	return &Flow{
		Name: "orders",
		Graph: domain.Graph{
			Nodes: []domain.Node{
				{ID: "src-1", Type: domain.NodeTypeFile, Config: &domain.NodeConfig{FilePath: "orders.json"}},
				{ID: "xf-1", Type: domain.NodeTypeTransform, Config: &domain.NodeConfig{Mappings: mappings}},
				{ID: "trg-1", Type: domain.NodeTypeTrigger, Config: &domain.NodeConfig{Schedule: "*/5 * * * *"}},
			},
			Edges: []domain.Edge{
				{Source: "src-1", Target: "xf-1"},
			},
		},
	}
}

func TestValidate_ValidFlow(t *testing.T) {
	assert.Empty(t, Validate(validFlow()))
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	flow := validFlow()
	flow.Name = ""
	flow.Graph.Edges = append(flow.Graph.Edges, domain.Edge{Source: "ghost", Target: "xf-1"})

	errs := Validate(flow)
	require.Len(t, errs, 2)
}

func TestValidate_MissingName(t *testing.T) {
	flow := validFlow()
	flow.Name = ""

	errs := Validate(flow)
	require.Len(t, errs, 1)
	assert.Equal(t, "flow", errs[0].Path)
	assert.Contains(t, errs[0].Message, "metadata.name")
}

func TestValidate_SourcePathInErrors(t *testing.T) {
	flow := validFlow()
	flow.Name = ""
	flow.SourcePath = "flows/orders.yaml"

	errs := Validate(flow)
	require.Len(t, errs, 1)
	assert.Equal(t, "flows/orders.yaml", errs[0].Path)
}

func TestValidate_EmptyNodeID(t *testing.T) {
	flow := validFlow()
	flow.Graph.Nodes = append(flow.Graph.Nodes, domain.Node{Type: domain.NodeTypeStorage})

	errs := Validate(flow)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "empty id")
}

func TestValidate_DuplicateNodeID(t *testing.T) {
	flow := validFlow()
	flow.Graph.Nodes = append(flow.Graph.Nodes, domain.Node{ID: "src-1", Type: domain.NodeTypeStorage})

	errs := Validate(flow)
	require.Len(t, errs, 1)
	assert.Equal(t, "node[src-1]", errs[0].Path)
	assert.Contains(t, errs[0].Message, "duplicate")
}

func TestValidate_EdgeEndpoints(t *testing.T) {
	flow := validFlow()
	flow.Graph.Edges = []domain.Edge{{Source: "ghost", Target: "phantom"}}

	errs := Validate(flow)
	require.Len(t, errs, 2)
	assert.Equal(t, "edge[0]", errs[0].Path)
	assert.Contains(t, errs[0].Message, `unknown node "ghost"`)
	assert.Contains(t, errs[1].Message, `unknown node "phantom"`)
}

func TestValidate_UnknownMappingKind(t *testing.T) {
	flow := validFlow()
	ms := domain.NewMappingSet()
	ms.Set("broken", domain.Mapping{Type: "teleport"})
	flow.Graph.Nodes[1].Config.Mappings = ms

	errs := Validate(flow)
	require.Len(t, errs, 1)
	assert.Equal(t, "node[xf-1]", errs[0].Path)
	assert.Contains(t, errs[0].Message, `mapping "broken"`)
	assert.Contains(t, errs[0].Message, "unknown mapping type")
}

func TestValidate_UnknownAggregateFunction(t *testing.T) {
	flow := validFlow()
	ms := domain.NewMappingSet()
	ms.Set("total", domain.Mapping{Type: domain.MappingAggregate, SourceField: "amount", Function: "median"})
	flow.Graph.Nodes[1].Config.Mappings = ms

	errs := Validate(flow)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unknown aggregate function")
}

func TestValidate_BadOutputSchema(t *testing.T) {
	flow := validFlow()
	flow.Graph.Nodes[1].Config.OutputSchema = domain.Schema{
		{Name: "id", Type: domain.FieldTypeNumber},
		{Name: "id", Type: domain.FieldTypeString},
	}

	errs := Validate(flow)
	require.Len(t, errs, 1)
	assert.Equal(t, "node[xf-1]", errs[0].Path)
	assert.Contains(t, errs[0].Message, "duplicate schema field")
}

func TestValidate_TriggerSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "five_field_expression", schedule: "*/10 * * * *", wantErr: false},
		{name: "descriptor", schedule: "@daily", wantErr: false},
		{name: "empty_schedule_skipped", schedule: "", wantErr: false},
		{name: "six_fields", schedule: "0 0 9 * * *", wantErr: true},
		{name: "garbage", schedule: "whenever", wantErr: true},
		{name: "out_of_range_minute", schedule: "61 * * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := validFlow()
			flow.Graph.Nodes[2].Config.Schedule = tt.schedule

			errs := Validate(flow)
			if tt.wantErr {
				require.Len(t, errs, 1)
				assert.Equal(t, "node[trg-1]", errs[0].Path)
				assert.Contains(t, errs[0].Message, "invalid schedule")
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidate_ScheduleIgnoredOffTrigger(t *testing.T) {
	flow := validFlow()
	flow.Graph.Nodes[0].Config.Schedule = "whenever"

	assert.Empty(t, Validate(flow))
}

func TestValidationError_Error(t *testing.T) {
	withPath := ValidationError{Path: "node[a]", Message: "boom"}
	assert.Equal(t, "node[a]: boom", withPath.Error())

	noPath := ValidationError{Message: "boom"}
	assert.Equal(t, "boom", noPath.Error())
}
