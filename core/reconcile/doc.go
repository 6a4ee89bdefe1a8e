// Package reconcile maps catalog items onto local records.
//
// An Engine run goes through fixed steps: locate or create the record tagged
// with the external id, fetch the item, then map core content, taxonomies,
// images and scalar metadata according to a settings.Mapping. Observers are
// notified after each step.
//
// Only a failed fetch aborts a run. Failures while mapping are logged and the
// remaining fields are still written.
//
//	engine := reconcile.NewEngine(repo, contentCfg, catalogClient, mediaResolver, termResolver, logger)
//	engine.Subscribe(reconcile.ObserverFunc(func(ctx context.Context, ev reconcile.Event) { ... }))
//	out := engine.Reconcile(ctx, mapping, "620", "en")
package reconcile
