// Package zpool turns pool configuration into zpool argument vectors and
// runs them.
//
// The package has two layers:
//   - Builder: pure synthesis of argv for create, destroy, import, export
//     and set. No I/O, no shared mutable state.
//   - Manager: validates through the Builder, hands the argv to a Runner,
//     and parses listing output with the inventory package.
//
// Create Argument Order:
//
// The create grammar is fixed and order matters to the tool:
//
//	create [-f] [-O prop=val]... [-o feature=enabled]... <name> [<raid token>] <disk>...
//
// Properties are emitted only when their value differs from "leave at tool
// default" (see catalog.Property.ShouldEmit). Features are emitted only
// when compatible, enabled and targeting the active OS family. A plain
// stripe has an empty raid token and emits nothing in its place. Disks are
// appended in the caller's order, which decides the physical layout.
//
// Consumer-Side Interface:
//
// The Runner interface is the only thing the Manager needs from a command
// executor. executor.Exec satisfies it; tests use a recording fake.
//
// Example usage:
//
//	b := zpool.NewBuilder(catalog.Default(), zpool.BuilderOptions{OSFamily: "linux"})
//	mgr := zpool.NewManager(b, executor.NewExec(time.Minute, nil), zpool.ManagerOptions{})
//
//	exec, err := mgr.Create(ctx, zpool.CreateRequest{
//	    Name:        "tank",
//	    Disks:       []string{"/dev/sda", "/dev/sdb"},
//	    RaidProfile: "Mirror",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(exec.Args)
package zpool
