// Package redis provides Redis connectivity for the lockout store:
// connection with startup retry and a health check helper.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := lockout.NewRedisStore(client)
package redis
