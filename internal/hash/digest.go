package hash

import (
	"crypto/sha256"
	"encoding/binary"
	gohash "hash"
	"sync/atomic"
)

const (
	digestTag = 'D'
	trialTag  = 'T'
)

type Stats struct {
	Digests      uint64
	TrialsHashed uint64
}

// Engine는 scan 결과를 재현 가능한 지문으로 요약한다.
// SHA-256 위에 key prefix와 도메인 분리 태그를 얹는다.
type Engine struct {
	key          [32]byte
	digests      atomic.Uint64
	trialsHashed atomic.Uint64
}

func NewEngine(key [32]byte) *Engine {
	return &Engine{key: key}
}

// Digest accumulates trials in the order they are added. Not safe for
// concurrent use.
type Digest struct {
	engine *Engine
	h      gohash.Hash
	trials uint64
	record [17]byte
}

func (e *Engine) NewDigest() *Digest {
	h := sha256.New()
	var header [33]byte
	header[0] = digestTag
	copy(header[1:], e.key[:])
	h.Write(header[:])

	e.digests.Add(1)
	return &Digest{engine: e, h: h}
}

func (d *Digest) AddTrial(start uint64, length int) {
	d.record[0] = trialTag
	binary.BigEndian.PutUint64(d.record[1:9], start)
	binary.BigEndian.PutUint64(d.record[9:17], uint64(length))
	d.h.Write(d.record[:])
	d.trials++
	d.engine.trialsHashed.Add(1)
}

func (d *Digest) Trials() uint64 {
	return d.trials
}

// Sum returns the digest of every trial added so far. It does not reset d.
func (d *Digest) Sum() [32]byte {
	var out [32]byte
	copy(out[:], d.h.Sum(nil))
	return out
}

func (e *Engine) Stats() Stats {
	return Stats{
		Digests:      e.digests.Load(),
		TrialsHashed: e.trialsHashed.Load(),
	}
}

func (e *Engine) ResetStats() {
	e.digests.Store(0)
	e.trialsHashed.Store(0)
}
