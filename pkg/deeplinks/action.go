package deeplinks

// Strategy selects how a PresentAction shows its scene.
type Strategy int

const (
	StrategyPrimary   Strategy = iota // Show in the primary context (Host.ShowPrimary)
	StrategySecondary                 // Show in the secondary/detail context (Host.ShowSecondary)
)

func (s Strategy) String() string {
	switch s {
	case StrategyPrimary:
		return "primary"
	case StrategySecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Action is what a deeplink asks for once handled: present a scene or run
// custom work. The concrete types are PresentAction, CustomAction and
// HostAction. A nil Action means nothing is to be done.
type Action interface {
	isAction()
}

// PresentAction shows Scene on the presentation host with Strategy.
type PresentAction struct {
	Scene    Scene
	Strategy Strategy
}

// CustomAction runs arbitrary work.
type CustomAction func()

// HostAction runs arbitrary work with the presentation host.
type HostAction func(host Host)

func (PresentAction) isAction() {}
func (CustomAction) isAction()  {}
func (HostAction) isAction()    {}

// Present builds a PresentAction.
func Present(scene Scene, strategy Strategy) Action {
	return PresentAction{Scene: scene, Strategy: strategy}
}

// Custom builds a CustomAction.
func Custom(fn func()) Action {
	return CustomAction(fn)
}

// CustomWithHost builds a HostAction.
func CustomWithHost(fn func(host Host)) Action {
	return HostAction(fn)
}
