// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"planforge/internal/domain"
)

// GenerateInput contains the parameters for a generation run.
type GenerateInput struct {
	TaskSpecPath string // Taskspec document path (empty = plan/taskspec.json)
	DryRun       bool   // If true, plan only: no writes, no external invocations
}

// ActionKind identifies one step of a generation run.
type ActionKind string

// Action kinds, in run order.
const (
	ActionEnsureAggregation ActionKind = "ensure aggregation"
	ActionEnsureUnit        ActionKind = "ensure unit"
	ActionLinkReference     ActionKind = "link reference"
	ActionRenderFile        ActionKind = "render file"
	ActionRenderTest        ActionKind = "render test"
)

// PlannedAction is one step a run would take, with its current on-disk
// state. Exists means the step has nothing left to do: the target is
// present, or for a reference link, the reference is already wired.
type PlannedAction struct {
	Kind   ActionKind
	Target string
	Exists bool
}

// GenerateOutput contains the result of a generation run. Actions is
// populated in dry-run mode only.
// Fields are ordered to minimize memory padding.
type GenerateOutput struct {
	Actions           []PlannedAction
	ManifestPath      string // Manifest location (empty in dry-run mode)
	WorkItemID        string
	UnitsCreated      int
	FilesChanged      int
	FilesUnchanged    int
	Registered        int
	AlreadyRegistered int
}

// Generate is the use case for a full generation run: ensure the
// aggregation and build units, link the first test unit to its
// implementation unit, render files and tests, and flush the manifest.
type Generate struct {
	specs        domain.TaskSpecLoader
	renderer     domain.Renderer
	registrar    domain.Registrar
	manifest     domain.ManifestWriter
	configLoader domain.ConfigLoader
	logger       domain.Logger
	root         string
	planDir      string
}

// NewGenerate creates a new Generate use case operating on the working
// tree at root with the plan directory at planDir.
func NewGenerate(
	specs domain.TaskSpecLoader,
	renderer domain.Renderer,
	registrar domain.Registrar,
	manifest domain.ManifestWriter,
	configLoader domain.ConfigLoader,
	logger domain.Logger,
	root string,
	planDir string,
) *Generate {
	return &Generate{
		specs:        specs,
		renderer:     renderer,
		registrar:    registrar,
		manifest:     manifest,
		configLoader: configLoader,
		logger:       logger,
		root:         root,
		planDir:      planDir,
	}
}

// Execute runs generation for the taskspec named by the input. The run is
// sequential and not transactional: a fatal error leaves whatever was
// already created on disk and writes no manifest, and a full re-run is
// safe because every step is idempotent.
func (uc *Generate) Execute(_ context.Context, in GenerateInput) (*GenerateOutput, error) {
	specPath := in.TaskSpecPath
	if specPath == "" {
		specPath = domain.TaskSpecPath(uc.planDir)
	}

	spec, err := uc.specs.Load(specPath)
	if err != nil {
		return nil, err
	}
	// De-duplication must hold before any side effect; Normalize is
	// idempotent, so a loader that already normalized costs nothing.
	spec.Normalize()

	// Load config for the aggregation descriptor path
	solution := domain.DefaultSolution
	if uc.configLoader != nil {
		cfg, err := uc.configLoader.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if cfg.Engine.Solution != "" {
			solution = cfg.Engine.Solution
		}
	}

	if in.DryRun {
		return uc.plan(spec, solution), nil
	}
	return uc.run(spec, solution)
}

// run executes the phases in order: aggregation, units, reference link,
// renders, manifest flush.
func (uc *Generate) run(spec *domain.TaskSpec, solution string) (*GenerateOutput, error) {
	out := &GenerateOutput{WorkItemID: spec.WorkItemID}
	changes := domain.NewChangeSet()

	if err := uc.ensureAggregation(spec, solution); err != nil {
		return nil, err
	}

	unitChanges, err := uc.ensureUnits(spec, solution, out)
	if err != nil {
		return nil, err
	}
	changes.Merge(unitChanges)

	linkChanges, err := uc.linkReference(spec)
	if err != nil {
		return nil, err
	}
	changes.Merge(linkChanges)

	renderChanges, err := uc.renderAll(spec, out)
	if err != nil {
		return nil, err
	}
	changes.Merge(renderChanges)

	// Flushed exactly once, and only after every phase succeeded. An
	// aborted run leaves no manifest, which tells the publishing step
	// that nothing should be committed for this attempt.
	manifestPath := domain.ManifestPath(uc.planDir)
	if err := uc.manifest.Write(manifestPath, changes); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	out.ManifestPath = manifestPath

	uc.logger.Info(spec.WorkItemID, "engine", fmt.Sprintf("run complete: %d paths recorded", changes.Len()))
	return out, nil
}

// ensureAggregation creates the aggregation descriptor when absent.
func (uc *Generate) ensureAggregation(spec *domain.TaskSpec, solution string) error {
	if uc.exists(solution) {
		return nil
	}
	uc.logger.Info(spec.WorkItemID, "engine", "creating aggregation "+solution)
	if err := uc.registrar.CreateAggregation(solution); err != nil {
		return fmt.Errorf("create aggregation %s: %w", solution, err)
	}
	return nil
}

// ensureUnits creates missing unit descriptors and registers every unit
// with the aggregation, created or not.
func (uc *Generate) ensureUnits(spec *domain.TaskSpec, solution string, out *GenerateOutput) (*domain.ChangeSet, error) {
	changes := domain.NewChangeSet()

	for _, unit := range spec.Projects {
		if uc.exists(unit) {
			uc.logger.Debug(spec.WorkItemID, "engine", "unit exists: "+unit)
		} else {
			template := domain.TemplateLibraryProject
			if domain.IsTestUnitPath(unit) {
				template = domain.TemplateTestProject
			}
			if _, err := uc.renderer.Render(unit, template, nil); err != nil {
				return nil, fmt.Errorf("create unit %s: %w", unit, err)
			}
			changes.Record(unit)
			out.UnitsCreated++
			uc.logger.Info(spec.WorkItemID, "engine", "created unit "+unit)
		}

		outcome, err := uc.registrar.Register(solution, unit)
		if err != nil {
			return nil, fmt.Errorf("register unit %s: %w", unit, err)
		}
		if outcome == domain.AlreadyRegistered {
			out.AlreadyRegistered++
			uc.logger.Info(spec.WorkItemID, "engine", "unit already registered: "+unit)
		} else {
			out.Registered++
		}
	}

	return changes, nil
}

// linkReference wires the first test unit to the inferred implementation
// unit. The step applies only when both descriptors are on disk, and the
// containment check keeps it idempotent across runs.
func (uc *Generate) linkReference(spec *domain.TaskSpec) (*domain.ChangeSet, error) {
	changes := domain.NewChangeSet()

	testUnit, mainUnit, ok := linkCandidate(spec)
	if !ok || !uc.exists(testUnit) || !uc.exists(mainUnit) {
		return changes, nil
	}

	raw, err := os.ReadFile(uc.abs(testUnit))
	if err != nil {
		return nil, fmt.Errorf("read descriptor %s: %w", testUnit, err)
	}
	doc, err := domain.ParseDescriptor(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse descriptor %s: %w", testUnit, err)
	}

	if doc.ContainsReference(filepath.Base(mainUnit)) {
		uc.logger.Debug(spec.WorkItemID, "engine", "reference already present in "+testUnit)
		return changes, nil
	}

	doc.InsertReference(domain.ReferenceInclude(testUnit, mainUnit))
	if err := os.WriteFile(uc.abs(testUnit), []byte(doc.String()), 0o644); err != nil { //nolint:gosec // Descriptors are repository files
		return nil, fmt.Errorf("write descriptor %s: %w", testUnit, err)
	}
	changes.Record(testUnit)
	uc.logger.Info(spec.WorkItemID, "engine", "linked "+testUnit+" to "+mainUnit)

	return changes, nil
}

// renderAll renders the file and test specs. Targets are recorded
// whether or not their content changed; publishing must still consider
// them part of the generation.
func (uc *Generate) renderAll(spec *domain.TaskSpec, out *GenerateOutput) (*domain.ChangeSet, error) {
	changes := domain.NewChangeSet()

	for _, f := range spec.Files {
		result, err := uc.renderer.Render(f.Path, f.Template, nil)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f.Path, err)
		}
		changes.Record(f.Path)
		uc.count(result, out)
		uc.logger.Debug(spec.WorkItemID, "render", f.Path+" "+result.String())
	}

	for _, t := range spec.Tests {
		result, err := uc.renderer.Render(t.Path, t.Template, t.Data)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", t.Path, err)
		}
		changes.Record(t.Path)
		uc.count(result, out)
		uc.logger.Debug(spec.WorkItemID, "render", t.Path+" "+result.String())
	}

	return changes, nil
}

func (uc *Generate) count(result domain.RenderResult, out *GenerateOutput) {
	if result == domain.RenderChanged {
		out.FilesChanged++
	} else {
		out.FilesUnchanged++
	}
}

// plan reports the actions a real run would take, computed from on-disk
// state without touching anything.
func (uc *Generate) plan(spec *domain.TaskSpec, solution string) *GenerateOutput {
	out := &GenerateOutput{WorkItemID: spec.WorkItemID}

	out.Actions = append(out.Actions, PlannedAction{
		Kind:   ActionEnsureAggregation,
		Target: solution,
		Exists: uc.exists(solution),
	})

	for _, unit := range spec.Projects {
		out.Actions = append(out.Actions, PlannedAction{
			Kind:   ActionEnsureUnit,
			Target: unit,
			Exists: uc.exists(unit),
		})
	}

	if testUnit, mainUnit, ok := linkCandidate(spec); ok {
		// Units ensured earlier in the same run count as present.
		if uc.willExist(spec, testUnit) && uc.willExist(spec, mainUnit) {
			out.Actions = append(out.Actions, PlannedAction{
				Kind:   ActionLinkReference,
				Target: testUnit,
				Exists: uc.linked(testUnit, mainUnit),
			})
		}
	}

	for _, f := range spec.Files {
		out.Actions = append(out.Actions, PlannedAction{
			Kind:   ActionRenderFile,
			Target: f.Path,
			Exists: uc.exists(f.Path),
		})
	}
	for _, t := range spec.Tests {
		out.Actions = append(out.Actions, PlannedAction{
			Kind:   ActionRenderTest,
			Target: t.Path,
			Exists: uc.exists(t.Path),
		})
	}

	return out
}

// linkCandidate returns the descriptors the reference-link step would
// involve: the first test unit and the inferred main unit.
func linkCandidate(spec *domain.TaskSpec) (testUnit, mainUnit string, ok bool) {
	testUnits := spec.TestUnits()
	if len(testUnits) == 0 {
		return "", "", false
	}
	mainUnit, ok = spec.MainUnit()
	if !ok {
		return "", "", false
	}
	return testUnits[0], mainUnit, true
}

// willExist reports whether the descriptor is on disk already or would be
// created by the unit phase of the same run.
func (uc *Generate) willExist(spec *domain.TaskSpec, descriptor string) bool {
	if uc.exists(descriptor) {
		return true
	}
	for _, unit := range spec.Projects {
		if strings.EqualFold(unit, descriptor) {
			return true
		}
	}
	return false
}

// linked reports whether the test descriptor already references the main
// descriptor. Unreadable or unparseable descriptors count as unlinked.
func (uc *Generate) linked(testUnit, mainUnit string) bool {
	raw, err := os.ReadFile(uc.abs(testUnit))
	if err != nil {
		return false
	}
	doc, err := domain.ParseDescriptor(string(raw))
	if err != nil {
		return false
	}
	return doc.ContainsReference(filepath.Base(mainUnit))
}

func (uc *Generate) abs(relPath string) string {
	return filepath.Join(uc.root, filepath.FromSlash(relPath))
}

func (uc *Generate) exists(relPath string) bool {
	_, err := os.Stat(uc.abs(relPath))
	return err == nil
}
