// Package template stores named manifest bundles so a generated result can be
// saved and recalled later.
//
// Templates are keyed by name. Saving an existing name replaces its content
// but keeps the original creation time. Two stores are provided: MemoryStore
// for single-process use and tests, and RedisStore backed by one Redis hash
// per template plus a set indexing all names.
//
//	store, err := template.NewStore(ctx, os.Getenv("REDIS_ADDR"))
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	t, err := store.Save(ctx, "web-dev", content)
package template
