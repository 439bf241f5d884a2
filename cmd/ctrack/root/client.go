package root

import (
	"context"
	"errors"

	"careertrack/internal/api"
	"careertrack/internal/config"
	"careertrack/internal/engine"
	"careertrack/internal/session"
)

// openSession loads config, opens the local session store and restores the
// persisted identity. Every command goes through here so the session state
// machine is resolved before any view logic runs.
func openSession(ctx context.Context) (*session.Store, config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	st, err := session.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	if err := st.Restore(ctx); err != nil {
		_ = st.Close()
		return nil, config.Config{}, nil, err
	}
	cleanup := func() {
		_ = st.Close()
	}
	return st, cfg, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, *session.Store, func(), error) {
	st, cfg, cleanup, err := openSession(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	client := api.NewClient(api.NewGateway(cfg.APIURL, st, cfg.HTTPTimeout))
	return engine.NewService(client), st, cleanup, nil
}

// requireIdentity returns the authenticated identity or an actionable error.
func requireIdentity(st *session.Store) (*api.Identity, error) {
	ident, state := st.Current()
	if state != session.StateAuthenticated || ident == nil {
		return nil, errors.New("not logged in (run 'ctrack login')")
	}
	return ident, nil
}
