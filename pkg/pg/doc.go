// Package pg provides PostgreSQL connectivity for the permission and
// lockout stores: pooled connections with startup retry, goose schema
// migrations, and error classification helpers.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
package pg
