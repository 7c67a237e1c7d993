package rebuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func readableSet(paths ...string) func(string) bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}

func TestResolveBuildPlanPrefersQuadletSpecificDockerfile(t *testing.T) {
	spec := Spec{EntryPath: "/srv/web/web.container", SourceDir: "/srv/web"}
	plan := ResolveBuildPlan(spec, readableSet("/srv/web/Dockerfile.web", "/srv/web/Dockerfile"))
	assert.Equal(t, "/srv/web/Dockerfile.web", plan.Dockerfile)
	assert.Equal(t, "/srv/web", plan.Dir)
}

func TestResolveBuildPlanFallsBackToGenericDockerfile(t *testing.T) {
	spec := Spec{EntryPath: "/srv/db/db.container", SourceDir: "/srv/db"}
	plan := ResolveBuildPlan(spec, readableSet("/srv/db/Dockerfile"))
	assert.Equal(t, "/srv/db/Dockerfile", plan.Dockerfile)
}

func TestResolveBuildPlanComposeUsesSourceDir(t *testing.T) {
	spec := Spec{EntryPath: "/srv/app/docker-compose.yml", SourceDir: "/srv/app"}
	plan := ResolveBuildPlan(spec, readableSet("/srv/app/Dockerfile"))
	assert.Equal(t, "/srv/app/Dockerfile", plan.Dockerfile)
}

func TestResolveBuildPlanMakefileWhenNoDockerfile(t *testing.T) {
	spec := Spec{EntryPath: "/srv/app/docker-compose.yml", SourceDir: "/srv/app"}
	plan := ResolveBuildPlan(spec, readableSet("/srv/app/Makefile"))
	assert.Empty(t, plan.Dockerfile)
	assert.True(t, plan.Makefile)
	assert.Equal(t, "/srv/app", plan.Dir)
}

func TestResolveBuildPlanNothingFound(t *testing.T) {
	spec := Spec{EntryPath: "/srv/app/docker-compose.yml", SourceDir: "/srv/app"}
	plan := ResolveBuildPlan(spec, readableSet())
	assert.Empty(t, plan.Dockerfile)
	assert.False(t, plan.Makefile)
	assert.Equal(t, "/srv/app", plan.Dir)
}
