package tui

const unknownViewType = "unknown"

// ViewType represents which view is active.
type ViewType int

const (
	ViewDashboard ViewType = iota
	ViewWater
	ViewFood
	ViewWorkout
)

// viewOrder is the tab cycle order.
var viewOrder = []ViewType{ViewDashboard, ViewWater, ViewFood, ViewWorkout}

// String returns the lowercase name of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewWater:
		return "water"
	case ViewFood:
		return "food"
	case ViewWorkout:
		return "workout"
	default:
		return unknownViewType
	}
}

// Title returns the tab label for the view type.
func (v ViewType) Title() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewWater:
		return "Water"
	case ViewFood:
		return "Food"
	case ViewWorkout:
		return "Workouts"
	default:
		return unknownViewType
	}
}

// Next returns the view after v in tab order, wrapping around.
func (v ViewType) Next() ViewType {
	for i, view := range viewOrder {
		if view == v {
			return viewOrder[(i+1)%len(viewOrder)]
		}
	}
	return ViewDashboard
}

// Prev returns the view before v in tab order, wrapping around.
func (v ViewType) Prev() ViewType {
	for i, view := range viewOrder {
		if view == v {
			return viewOrder[(i+len(viewOrder)-1)%len(viewOrder)]
		}
	}
	return ViewDashboard
}
