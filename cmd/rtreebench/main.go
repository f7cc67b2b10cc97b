// Command rtreebench drives a random mixed workload against an rtree.Tree
// and periodically reports throughput and the live-id count, printing the
// tree's structure once at the end; the external bench harness named
// alongside the index itself.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/heyvrann/RTSE/geom"
	"github.com/heyvrann/RTSE/internal/rtlog"
	"github.com/heyvrann/RTSE/rtree"
)

func main() {
	var (
		extent   = flag.Float64("extent", 10000, "side length of the square universe boxes are drawn from")
		maxSide  = flag.Float64("max-side", 25, "maximum side length of a generated box")
		steps    = flag.Int("steps", 2_000_000, "number of workload steps to run")
		target   = flag.Int("target", 50_000, "approximate number of ids to keep live")
		queries  = flag.Int("queries-per-step", 1, "number of QueryRange calls issued per step")
		seed     = flag.Int64("seed", 1, "PRNG seed, for reproducible runs")
		logLevel = flag.Int("log-level", rtlog.Info, "log importance threshold")
	)
	flag.Parse()

	log := rtlog.NewLogger(os.Stdout, *logLevel)
	defer log.Close()

	rng := rand.New(rand.NewSource(*seed))
	tr := rtree.New()

	var inserted, erased, updated, queried uint64
	live := make(map[uint64]geom.Box)
	var nextID uint64

	start := time.Now()
	log.AddPeriodic("throughput", 2*time.Second, 30*time.Second, func(c *rtlog.Composer, sinceLast time.Duration) {
		c.Writeln("t=%s live=%d inserted=%s erased=%s updated=%s queried=%s",
			time.Since(start).Round(time.Second),
			tr.Len(),
			rtlog.SiMultiple(inserted, 1000, 'G'),
			rtlog.SiMultiple(erased, 1000, 'G'),
			rtlog.SiMultiple(updated, 1000, 'G'),
			rtlog.SiMultiple(queried, 1000, 'G'),
		)
	})

	randomBox := func() geom.Box {
		x1 := rng.Float64() * *extent
		y1 := rng.Float64() * *extent
		x2 := x1 + rng.Float64()**maxSide
		y2 := y1 + rng.Float64()**maxSide
		b, err := geom.NewBox(geom.Point{X: x1, Y: y1}, geom.Point{X: x2, Y: y2})
		if err != nil {
			log.Fatalf("generated an invalid box: %v", err)
		}
		return b
	}

	for step := 0; step < *steps; step++ {
		switch {
		case len(live) < *target && (len(live) == 0 || rng.Intn(3) != 0):
			id := nextID
			nextID++
			b := randomBox()
			if err := tr.Insert(b, id); err != nil {
				log.Fatalf("Insert(%d): %v", id, err)
			}
			live[id] = b
			inserted++
		case rng.Intn(2) == 0:
			id := pickLiveID(rng, live)
			b := randomBox()
			if err := tr.Update(id, b); err != nil {
				log.Fatalf("Update(%d): %v", id, err)
			}
			live[id] = b
			updated++
		default:
			id := pickLiveID(rng, live)
			if err := tr.Erase(id); err != nil {
				log.Fatalf("Erase(%d): %v", id, err)
			}
			delete(live, id)
			erased++
		}
		for i := 0; i < *queries; i++ {
			tr.QueryRange(randomBox())
			queried++
		}
	}

	log.RunAllPeriodic()
	log.Infof("final: %s", tr.DebugStructure())
}

func pickLiveID(rng *rand.Rand, live map[uint64]geom.Box) uint64 {
	n := rng.Intn(len(live))
	for id := range live {
		if n == 0 {
			return id
		}
		n--
	}
	panic("unreachable")
}
