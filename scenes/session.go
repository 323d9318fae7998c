package scenes

import (
	"github.com/automoto/partyroom/network"
	"github.com/automoto/partyroom/shared/motion"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Session is what survives scene changes: the server connection and the
// controller tuning every spawned player uses.
type Session struct {
	Client     *network.Client
	Matchmaker *network.Matchmaker
	Tuning     motion.Config
}

func NewSession(matchmaker *network.Matchmaker, tuning motion.Config) *Session {
	return &Session{
		Client:     network.NewClient(),
		Matchmaker: matchmaker,
		Tuning:     tuning,
	}
}
