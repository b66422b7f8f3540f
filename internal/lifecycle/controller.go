package lifecycle

import (
	"fmt"
	"sync"

	"github.com/maheshrc27/content-studio/internal/models"
)

// Controller tracks the active step of one draft.
type Controller struct {
	mu   sync.Mutex
	step Step
}

func NewController() *Controller {
	return &Controller{step: StepIdle}
}

func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Open moves the controller onto the step the draft resumes at.
func (c *Controller) Open(draft *models.Content) Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = ResumeStep(draft)
	return c.step
}

// OnGenerated is called once generated text has been merged into the draft.
// It advances to customize; nothing else moves there on its own.
func (c *Controller) OnGenerated(draft *models.Content) (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !Reachable(draft, StepCustomize) {
		return c.step, fmt.Errorf("customize: %w", models.ErrStepUnreachable)
	}
	c.step = StepCustomize
	return c.step, nil
}

// Continue confirms the customize step and moves on to publish.
func (c *Controller) Continue(draft *models.Content) (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != StepCustomize {
		return c.step, fmt.Errorf("continue from %s: %w", c.step, models.ErrStepUnreachable)
	}
	if !Reachable(draft, StepPublish) {
		return c.step, fmt.Errorf("publish: %w", models.ErrStepUnreachable)
	}
	c.step = StepPublish
	return c.step, nil
}

// GoTo is explicit navigation to any reachable step.
func (c *Controller) GoTo(draft *models.Content, step Step) (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !step.Valid() || !Reachable(draft, step) {
		return c.step, fmt.Errorf("%s: %w", step, models.ErrStepUnreachable)
	}
	c.step = step
	return c.step, nil
}

// Registry keeps one Controller per draft id.
type Registry struct {
	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry() *Registry {
	return &Registry{controllers: make(map[string]*Controller)}
}

// For returns the draft's controller, opening a new one at the draft's resume
// step the first time.
func (r *Registry) For(draft *models.Content) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctrl, ok := r.controllers[draft.ID]
	if !ok {
		ctrl = NewController()
		ctrl.Open(draft)
		r.controllers[draft.ID] = ctrl
	}
	return ctrl
}

func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.controllers, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}
