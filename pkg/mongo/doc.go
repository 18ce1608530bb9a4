// Package mongo provides MongoDB connectivity for the document-backed
// grant source.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.ConnectDatabase(ctx, cfg, "guardkit")
//	if err != nil {
//	    return err
//	}
//
//	source := rbac.NewMongoSource(db)
package mongo
