// Package admin holds maintenance endpoints restricted to administrators.
//
// The data reset wipes catalog, inventory, image and audit tables in one
// transaction and then clears the orphaned image objects from storage. User
// accounts are never touched.
package admin
