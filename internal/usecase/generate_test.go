package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/internal/domain"
	"planforge/internal/infra/manifest"
	"planforge/internal/infra/render"
	"planforge/internal/testutil"
)

// newGenerateFixture wires a Generate use case over a temp working tree
// with a real renderer and manifest writer and a mock registrar.
func newGenerateFixture(t *testing.T, spec *domain.TaskSpec) (*Generate, *testutil.MockRegistrar, string) {
	t.Helper()
	root := t.TempDir()
	registrar := testutil.NewMockRegistrar(root)
	uc := NewGenerate(
		&testutil.MockTaskSpecLoader{Spec: spec},
		render.NewRenderer(root),
		registrar,
		manifest.NewWriter(),
		nil,
		testutil.NopLogger{},
		root,
		filepath.Join(root, domain.PlanDirName),
	)
	return uc, registrar, root
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestGenerate_Execute_EndToEnd(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{
		WorkItemID: "1042",
		Projects:   []string{"src/Foo/Foo.proj", "src/Foo.Tests/Foo.Tests.proj"},
		Files:      []domain.FileSpec{{Path: "src/Foo/Bar.ext", Template: domain.TemplateClass}},
	}
	uc, registrar, root := newGenerateFixture(t, spec)

	// Execute
	out, err := uc.Execute(context.Background(), GenerateInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, out.UnitsCreated)
	assert.Equal(t, 2, out.Registered)
	assert.Equal(t, 1, out.FilesChanged)
	assert.Equal(t, []string{domain.DefaultSolution}, registrar.Created)
	assert.Equal(t, spec.Projects, registrar.Registered)

	// Both descriptors exist and the test descriptor references the main one.
	assert.FileExists(t, filepath.Join(root, "src", "Foo", "Foo.proj"))
	testDesc := readFile(t, root, "src/Foo.Tests/Foo.Tests.proj")
	assert.Contains(t, testDesc, `<ProjectReference Include="../Foo/Foo.proj" />`)

	// The rendered file exists and the manifest holds exactly the three
	// touched paths, sorted.
	assert.FileExists(t, filepath.Join(root, "src", "Foo", "Bar.ext"))
	wantManifest := "src/Foo.Tests/Foo.Tests.proj\nsrc/Foo/Bar.ext\nsrc/Foo/Foo.proj\n"
	assert.Equal(t, wantManifest, readFile(t, root, "plan/manifest.txt"))
	assert.Equal(t, filepath.Join(root, "plan", "manifest.txt"), out.ManifestPath)
}

func TestGenerate_Execute_SecondRunIsIdempotent(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{
		WorkItemID: "1042",
		Projects:   []string{"src/Foo/Foo.proj", "src/Foo.Tests/Foo.Tests.proj"},
		Files:      []domain.FileSpec{{Path: "src/Foo/Bar.ext", Template: domain.TemplateClass}},
	}
	uc, _, root := newGenerateFixture(t, spec)
	_, err := uc.Execute(context.Background(), GenerateInput{})
	require.NoError(t, err)
	firstDesc := readFile(t, root, "src/Foo.Tests/Foo.Tests.proj")

	// Execute
	out, err := uc.Execute(context.Background(), GenerateInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, out.UnitsCreated)
	assert.Equal(t, 1, out.FilesUnchanged)

	// The reference block is not duplicated.
	secondDesc := readFile(t, root, "src/Foo.Tests/Foo.Tests.proj")
	assert.Equal(t, firstDesc, secondDesc)
	assert.Equal(t, 1, strings.Count(secondDesc, "<ProjectReference"))

	// Only the rendered file was touched this time.
	assert.Equal(t, "src/Foo/Bar.ext\n", readFile(t, root, "plan/manifest.txt"))
}

func TestGenerate_Execute_DeduplicatesUnits(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{
		WorkItemID: "7",
		Projects:   []string{"src/Foo/Foo.proj", "SRC/FOO/FOO.proj"},
	}
	uc, registrar, _ := newGenerateFixture(t, spec)

	// Execute
	out, err := uc.Execute(context.Background(), GenerateInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, out.UnitsCreated)
	assert.Equal(t, []string{"src/Foo/Foo.proj"}, registrar.Registered)
}

func TestGenerate_Execute_DryRunTouchesNothing(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{
		WorkItemID: "7",
		Projects:   []string{"src/Foo/Foo.proj", "src/Foo.Tests/Foo.Tests.proj"},
		Files:      []domain.FileSpec{{Path: "src/Foo/Bar.ext", Template: domain.TemplateClass}},
	}
	uc, registrar, root := newGenerateFixture(t, spec)

	// Execute
	out, err := uc.Execute(context.Background(), GenerateInput{DryRun: true})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, registrar.Created)
	assert.Empty(t, registrar.Registered)
	assert.NoFileExists(t, filepath.Join(root, domain.DefaultSolution))
	assert.NoDirExists(t, filepath.Join(root, "src"))
	assert.NoFileExists(t, filepath.Join(root, "plan", "manifest.txt"))
	assert.Empty(t, out.ManifestPath)

	wantActions := []PlannedAction{
		{Kind: ActionEnsureAggregation, Target: "App.sln"},
		{Kind: ActionEnsureUnit, Target: "src/Foo/Foo.proj"},
		{Kind: ActionEnsureUnit, Target: "src/Foo.Tests/Foo.Tests.proj"},
		{Kind: ActionLinkReference, Target: "src/Foo.Tests/Foo.Tests.proj"},
		{Kind: ActionRenderFile, Target: "src/Foo/Bar.ext"},
	}
	assert.Equal(t, wantActions, out.Actions)
}

func TestGenerate_Execute_DryRunMarksExistingTargets(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{
		WorkItemID: "7",
		Projects:   []string{"src/Foo/Foo.proj", "src/Foo.Tests/Foo.Tests.proj"},
		Files:      []domain.FileSpec{{Path: "src/Foo/Bar.ext", Template: domain.TemplateClass}},
	}
	uc, _, _ := newGenerateFixture(t, spec)
	_, err := uc.Execute(context.Background(), GenerateInput{})
	require.NoError(t, err)

	// Execute
	out, err := uc.Execute(context.Background(), GenerateInput{DryRun: true})

	// Assert
	require.NoError(t, err)
	require.Len(t, out.Actions, 5)
	for _, action := range out.Actions {
		assert.True(t, action.Exists, "%s %s", action.Kind, action.Target)
	}
}

func TestGenerate_Execute_AlreadyRegisteredContinues(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{
		WorkItemID: "7",
		Projects:   []string{"src/Foo/Foo.proj"},
	}
	uc, registrar, root := newGenerateFixture(t, spec)
	registrar.Outcomes["src/Foo/Foo.proj"] = domain.AlreadyRegistered

	// Execute
	out, err := uc.Execute(context.Background(), GenerateInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, out.AlreadyRegistered)
	assert.Equal(t, 0, out.Registered)
	assert.FileExists(t, filepath.Join(root, "plan", "manifest.txt"))
}

func TestGenerate_Execute_RegisterFailureAbortsWithoutManifest(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{
		WorkItemID: "7",
		Projects:   []string{"src/Foo/Foo.proj"},
		Files:      []domain.FileSpec{{Path: "src/Foo/Bar.ext", Template: domain.TemplateClass}},
	}
	uc, registrar, root := newGenerateFixture(t, spec)
	registrar.RegisterErr["src/Foo/Foo.proj"] = errors.New("exit status 1: unit file is invalid")

	// Execute
	_, err := uc.Execute(context.Background(), GenerateInput{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register unit src/Foo/Foo.proj")

	// The created descriptor stays on disk, but no manifest is written.
	assert.FileExists(t, filepath.Join(root, "src", "Foo", "Foo.proj"))
	assert.NoFileExists(t, filepath.Join(root, "plan", "manifest.txt"))
}

func TestGenerate_Execute_UnknownTemplateAbortsWithoutManifest(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{
		WorkItemID: "7",
		Projects:   []string{"src/Foo/Foo.proj"},
		Files:      []domain.FileSpec{{Path: "src/Foo/Bar.ext", Template: "nope"}},
	}
	uc, _, root := newGenerateFixture(t, spec)

	// Execute
	_, err := uc.Execute(context.Background(), GenerateInput{})

	// Assert
	require.ErrorIs(t, err, domain.ErrTemplateNotFound)
	assert.NoFileExists(t, filepath.Join(root, "plan", "manifest.txt"))
}

func TestGenerate_Execute_SpecNotFound(t *testing.T) {
	// Setup
	root := t.TempDir()
	uc := NewGenerate(
		&testutil.MockTaskSpecLoader{Err: domain.ErrTaskSpecNotFound},
		render.NewRenderer(root),
		testutil.NewMockRegistrar(root),
		manifest.NewWriter(),
		nil,
		testutil.NopLogger{},
		root,
		filepath.Join(root, domain.PlanDirName),
	)

	// Execute
	_, err := uc.Execute(context.Background(), GenerateInput{})

	// Assert
	assert.ErrorIs(t, err, domain.ErrTaskSpecNotFound)
}

func TestGenerate_Execute_NoLinkWithoutTestUnit(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{
		WorkItemID: "7",
		Projects:   []string{"src/Foo/Foo.proj"},
		Files:      []domain.FileSpec{{Path: "src/Foo/Bar.ext", Template: domain.TemplateClass}},
	}
	uc, _, root := newGenerateFixture(t, spec)

	// Execute
	_, err := uc.Execute(context.Background(), GenerateInput{})

	// Assert
	require.NoError(t, err)
	assert.NotContains(t, readFile(t, root, "src/Foo/Foo.proj"), "<ProjectReference")
}

func TestGenerate_Execute_SolutionFromConfig(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{WorkItemID: "7", Projects: []string{"src/Foo/Foo.proj"}}
	root := t.TempDir()
	registrar := testutil.NewMockRegistrar(root)
	configLoader := testutil.NewMockConfigLoader()
	configLoader.Config.Engine.Solution = "build/All.sln"
	uc := NewGenerate(
		&testutil.MockTaskSpecLoader{Spec: spec},
		render.NewRenderer(root),
		registrar,
		manifest.NewWriter(),
		configLoader,
		testutil.NopLogger{},
		root,
		filepath.Join(root, domain.PlanDirName),
	)

	// Execute
	_, err := uc.Execute(context.Background(), GenerateInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"build/All.sln"}, registrar.Created)
	assert.FileExists(t, filepath.Join(root, "build", "All.sln"))
}

func TestGenerate_Execute_CustomTaskSpecPath(t *testing.T) {
	// Setup
	spec := &domain.TaskSpec{WorkItemID: "7"}
	loader := &testutil.MockTaskSpecLoader{Spec: spec}
	root := t.TempDir()
	uc := NewGenerate(
		loader,
		render.NewRenderer(root),
		testutil.NewMockRegistrar(root),
		manifest.NewWriter(),
		nil,
		testutil.NopLogger{},
		root,
		filepath.Join(root, domain.PlanDirName),
	)

	// Execute
	_, err := uc.Execute(context.Background(), GenerateInput{TaskSpecPath: "elsewhere/spec.json"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "elsewhere/spec.json", loader.LoadedPath)
}
