package eventbus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// PublishWithLeagueScope publishes msg on {baseTopic}.{leagueID} so dashboards can follow
// one league ("league.match.recorded.v1.<id>") or all of them ("league.match.recorded.v1.*").
func PublishWithLeagueScope(bus message.Publisher, baseTopic string, leagueID string, msg *message.Message) error {
	if leagueID == "" {
		return fmt.Errorf("leagueID cannot be empty for league-scoped publish")
	}
	return bus.Publish(FormatLeagueScopedTopic(baseTopic, leagueID), msg)
}

// FormatLeagueScopedTopic formats a topic with the league suffix without publishing.
func FormatLeagueScopedTopic(baseTopic string, leagueID string) string {
	return fmt.Sprintf("%s.%s", baseTopic, leagueID)
}
