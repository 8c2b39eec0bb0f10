package plugin

type MockPluginOption func(*MockPlugin)

type MockPlugin struct {
	metadata Metadata
}

func NewMockPlugin(id string, opts ...MockPluginOption) *MockPlugin {
	mp := &MockPlugin{
		metadata: Metadata{
			ID:      id,
			Version: "1.0.0",
		},
	}

	for _, opt := range opts {
		opt(mp)
	}
	return mp
}

func WithDependencies(deps ...Dependency) MockPluginOption {
	copied := make([]Dependency, len(deps))
	copy(copied, deps)
	return func(mp *MockPlugin) {
		mp.metadata.Dependencies = copied
	}
}

func WithVersion(version string) MockPluginOption {
	return func(mp *MockPlugin) {
		mp.metadata.Version = version
	}
}

func dependsOn(ids ...string) []Dependency {
	deps := make([]Dependency, 0, len(ids))
	for _, id := range ids {
		deps = append(deps, Dependency{ID: id})
	}
	return deps
}

func (m *MockPlugin) PluginMetadata() Metadata {
	return m.metadata
}

func pluginIDs(plugins []Plugin) []string {
	ids := make([]string, 0, len(plugins))
	for _, p := range plugins {
		ids = append(ids, p.PluginMetadata().ID)
	}
	return ids
}
