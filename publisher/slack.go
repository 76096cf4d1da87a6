package publisher

import (
	"fmt"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	"github.com/nlopes/slack"
	"github.com/pkg/errors"
)

// SlackPoster is the part of *slack.Client the publisher needs
type SlackPoster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackPublisher posts to a channel when a sensor's status changes, for
// example from ok to error. The first status seen for a sensor is only
// recorded
type SlackPublisher struct {
	Logger    *dlog.Logger
	Client    SlackPoster
	ChannelID string
	statuses  map[string]model.Status
}

func (sp *SlackPublisher) Publish(states []model.SensorState) error {
	sp.Logger.Debug("SlackPublisher Publish")

	if sp.statuses == nil {
		sp.statuses = map[string]model.Status{}
	}

	var firstErr error
	failed := 0

	for _, state := range states {
		previous, seen := sp.statuses[state.Key]
		if seen && previous == state.Status {
			continue
		}

		if !seen || state.Status == model.StatusUnknown {
			sp.statuses[state.Key] = state.Status
			continue
		}

		if _, _, err := sp.Client.PostMessage(sp.ChannelID, slack.MsgOptionText(statusMessage(state), false)); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		sp.statuses[state.Key] = state.Status
	}

	// A failed post leaves the old status recorded so the change is posted
	// again next time
	if firstErr != nil {
		return errors.Wrapf(firstErr, "cannot post %d status change(s) to Slack channel `%s`", failed, sp.ChannelID)
	}

	return nil
}

func statusMessage(state model.SensorState) string {
	if state.Status == model.StatusOK {
		return fmt.Sprintf("%s: %s %s", state.Name, state.State, state.UnitOfMeasurement)
	}

	return fmt.Sprintf("%s: %s", state.Name, state.State)
}
