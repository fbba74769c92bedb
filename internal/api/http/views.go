package httpapi

import (
	"time"

	"github.com/i474232898/weather-lookup/internal/session"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// stateView is the JSON rendering of a session's state. Result and Error are
// mutually exclusive; both are absent before the first lookup settles.
type stateView struct {
	ID         string              `json:"id"`
	Location   string              `json:"location"`
	Pending    bool                `json:"pending"`
	Submitted  bool                `json:"submitted"`
	Superseded bool                `json:"superseded,omitempty"`
	Result     *weather.ReportView `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

func newStateView(id string, state session.State, submitted bool, iconBase string) stateView {
	view := stateView{
		ID:        id,
		Location:  state.Location,
		Pending:   state.Pending,
		Submitted: submitted,
		UpdatedAt: state.UpdatedAt,
	}

	if o := state.Outcome; o != nil {
		if o.OK() {
			view.Result = weather.BuildView(o.Report, iconBase)
		} else {
			view.Error = weather.LookupFailedMessage
		}
	}

	return view
}
