// Package physics implements a hard-sphere gas in a cubic chamber.
//
// A [Gas] owns N identical particles. [New] places them on a jittered lattice
// and draws velocity components uniformly in [-1, 1] scaled by the thermal
// speed; repeated calls to [Gas.Step] then relax the ensemble toward the
// Maxwell–Boltzmann speed distribution through elastic collisions:
//
//	gas, err := physics.New(physics.DefaultParams(), rand.New(rand.NewSource(7)))
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < 1000; i++ {
//	    if err := gas.Step(2e-9); err != nil {
//	        return err
//	    }
//	}
//	speeds := gas.Speeds()
//
// # Pair Search
//
// Collision candidates are found by an all-pairs distance check by default.
// [SearchCells] bins particles into the chamber's cell partition table and
// only checks neighbouring cells; it yields the same pairs in the same order.
//
// # Thread Safety
//
// A Gas is not safe for concurrent use. Step may fan the distance checks out
// over several goroutines, but collision writes are always serial.
package physics
