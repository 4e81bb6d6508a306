package toml

import (
	"fmt"

	"github.com/hyrosy/tripdesk/internal/domain"
)

const currentSchemaVersion = 1

type sessionSchema struct {
	Version   int    `toml:"version"`
	Site      string `toml:"site"`
	ActorID   int    `toml:"actor_id"`
	ActorName string `toml:"actor_name"`
	Token     string `toml:"token"`
}

func (s sessionSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func (s sessionSchema) toDomain() domain.Session {
	return domain.Session{
		SiteURL:   s.Site,
		ActorID:   s.ActorID,
		ActorName: s.ActorName,
		Token:     s.Token,
	}
}

func toSchema(session domain.Session) sessionSchema {
	return sessionSchema{
		Version:   currentSchemaVersion,
		Site:      session.SiteURL,
		ActorID:   session.ActorID,
		ActorName: session.ActorName,
		Token:     session.Token,
	}
}
