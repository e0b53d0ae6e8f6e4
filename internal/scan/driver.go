package scan

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/Pam-La/hailstone/internal/hailstone"
	"github.com/Pam-La/hailstone/internal/hash"
	"github.com/Pam-La/hailstone/internal/ring"
	"github.com/Pam-La/hailstone/internal/seqbuf"
)

var (
	ErrDriverClosed = errors.New("scan driver closed")
)

type Config struct {
	DemoStart       uint64
	Limit           uint64 // exclusive
	InitialCapacity int

	// Number of most recent record-setting trials kept in Result.Records.
	// Rounded up to a power of two, at least 2.
	RecordHistory int
	DigestKey     [32]byte
}

// Trial is the outcome of one generator run. Length counts the start value.
type Trial struct {
	Start  uint64
	Length int
}

type Demo struct {
	Trial
	Head []uint64
	Tail []uint64
}

type Result struct {
	Demo    Demo
	Best    Trial
	Records []Trial // oldest first, ends with Best
	Scanned uint64
	Digest  [32]byte
	Elapsed time.Duration
}

// Driver owns a single sequence buffer for its whole lifetime and reuses it
// across every trial. Not safe for concurrent use.
type Driver struct {
	cfg     Config
	log     logr.Logger
	buf     *seqbuf.Buffer
	hasher  *hash.Engine
	records *ring.Ring[Trial]
	closed  bool
}

func NewDriver(cfg Config, log logr.Logger) *Driver {
	if cfg.DemoStart == 0 {
		cfg.DemoStart = DefaultDemoStart
	}
	if cfg.InitialCapacity < 1 {
		cfg.InitialCapacity = DefaultInitialCapacity
	}
	if cfg.RecordHistory < 1 {
		cfg.RecordHistory = DefaultRecordHistory
	}
	records, err := ring.New[Trial](nextPowerOfTwo(cfg.RecordHistory))
	if err != nil {
		// nextPowerOfTwo never returns an invalid capacity
		panic(err)
	}
	return &Driver{
		cfg:     cfg,
		log:     log,
		buf:     seqbuf.New(cfg.InitialCapacity),
		hasher:  hash.NewEngine(cfg.DigestKey),
		records: records,
	}
}

func nextPowerOfTwo(n int) uint64 {
	c := uint64(2)
	for c < uint64(n) {
		c <<= 1
	}
	return c
}

// Run executes the demo trial followed by the full scan.
func (d *Driver) Run() (Result, error) {
	started := time.Now()

	demo, err := d.Demo()
	if err != nil {
		return Result{}, err
	}
	d.log.V(1).Info("demo trial finished", "start", demo.Start, "length", demo.Length)

	d.hasher.ResetStats()
	digest := d.hasher.NewDigest()
	d.records.Reset()
	best, err := d.scanRange(1, d.cfg.Limit, digest.AddTrial)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Demo:    demo,
		Best:    best,
		Records: d.records.Snapshot(),
		Scanned: digest.Trials(),
		Digest:  digest.Sum(),
		Elapsed: time.Since(started),
	}
	d.log.V(1).Info("scan finished",
		"limit", d.cfg.Limit,
		"scanned", res.Scanned,
		"bestStart", best.Start,
		"bestLength", best.Length,
		"records", len(res.Records),
		"bufferCapacity", d.buf.Cap(),
		"bufferGrows", d.buf.Grows(),
		"digest", fmt.Sprintf("%x", res.Digest[:8]),
		"trialsHashed", d.hasher.Stats().TrialsHashed,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// Demo runs one trial for the configured demo start and captures its head
// and tail windows.
func (d *Driver) Demo() (Demo, error) {
	length, err := d.trial(d.cfg.DemoStart)
	if err != nil {
		return Demo{}, err
	}

	headEnd := min(windowSize, length)
	tailStart := max(0, length-windowSize)

	demo := Demo{
		Trial: Trial{Start: d.cfg.DemoStart, Length: length},
		Head:  make([]uint64, 0, headEnd),
		Tail:  make([]uint64, 0, length-tailStart),
	}
	for i := 0; i < headEnd; i++ {
		demo.Head = append(demo.Head, d.buf.At(i))
	}
	for i := tailStart; i < length; i++ {
		demo.Tail = append(demo.Tail, d.buf.At(i))
	}
	d.buf.Reset()
	return demo, nil
}

// Longest scans [1, Limit) and returns the first start with the greatest
// sequence length. An empty range returns the zero Trial.
func (d *Driver) Longest() (Trial, error) {
	d.records.Reset()
	return d.scanRange(1, d.cfg.Limit, nil)
}

// Records returns the most recent record-setting trials of the last scan,
// oldest first.
func (d *Driver) Records() []Trial {
	return d.records.Snapshot()
}

func (d *Driver) scanRange(from, to uint64, observe func(start uint64, length int)) (Trial, error) {
	var best Trial
	for n := from; n < to; n++ {
		length, err := d.trial(n)
		if err != nil {
			return Trial{}, err
		}
		if observe != nil {
			observe(n, length)
		}
		// strict > keeps the smallest start on ties
		if length > best.Length {
			best = Trial{Start: n, Length: length}
			d.records.Push(best)
		}
	}
	d.buf.Reset()
	return best, nil
}

// trial leaves the sequence of start in the buffer and returns its length.
func (d *Driver) trial(start uint64) (int, error) {
	if d.closed {
		return 0, ErrDriverClosed
	}
	d.buf.Reset()
	if err := d.buf.Append(start); err != nil {
		return 0, fmt.Errorf("trial %d: %w", start, err)
	}
	if err := hailstone.Step(d.buf, start); err != nil {
		return 0, fmt.Errorf("trial %d: %w", start, err)
	}
	return d.buf.Len(), nil
}

// Close releases the buffer. Further calls return ErrDriverClosed.
func (d *Driver) Close() {
	if d.closed {
		return
	}
	d.buf.Free()
	d.closed = true
}
