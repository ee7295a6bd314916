// Package fleet holds the demo vehicle pool shared by the seeder and the
// trip simulator, so seeded receipts and simulated trips draw from the
// same vehicles and drivers.
package fleet

import "math/rand"

// Vehicle pairs a registration number with its regular driver.
type Vehicle struct {
	Number string
	Driver string
}

var pool = []Vehicle{
	{"MH-04-AB-1021", "R. Salunkhe"},
	{"MH-04-CD-2233", "P. Gaikwad"},
	{"GJ-01-KT-0090", "A. Chauhan"},
	{"KA-05-MN-7341", "S. Reddy"},
	{"TN-09-QP-5512", "V. Kumar"},
	{"MH-46-XY-8080", "D. Pawar"},
}

// Pool returns the demo vehicles.
func Pool() []Vehicle {
	out := make([]Vehicle, len(pool))
	copy(out, pool)
	return out
}

// Pick draws one vehicle from the pool using the provided source.
func Pick(rng *rand.Rand) Vehicle {
	return pool[rng.Intn(len(pool))]
}
