package blockminer

import (
	"context"
	"math"
	"math/big"
	"sync/atomic"

	"github.com/kaspanet/blockminer/domain/consensus/model"
	"github.com/kaspanet/blockminer/domain/consensus/model/externalapi"
	"github.com/kaspanet/blockminer/domain/consensus/utils/merkle"
	"github.com/kaspanet/blockminer/domain/consensus/utils/pow"
	"github.com/kaspanet/blockminer/infrastructure/logger"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrMiningAborted indicates the search stopped before a satisfying
	// nonce was found, either because the context was done or because the
	// attempt limit was reached
	ErrMiningAborted = errors.New("mining aborted")

	// ErrTemplateAlreadySealed indicates an attempt to mine a template a
	// block was already mined from
	ErrTemplateAlreadySealed = errors.New("block template is already sealed")
)

type blockMiner struct {
	hashesTried uint64 // atomic, kept first for 64-bit alignment

	workers     int
	maxAttempts uint64
	batchSize   uint64
}

// New instantiates a new BlockMiner
func New(cfg *Config) model.BlockMiner {
	workers := cfg.Workers
	if workers < 1 {
		workers = defaultWorkers
	}
	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = defaultBatchSize
	}
	return &blockMiner{
		workers:     workers,
		maxAttempts: cfg.MaxAttempts,
		batchSize:   batchSize,
	}
}

// Mine searches nonces upwards from template.Nonce until the block hash is
// below target, and returns the sealed block. The template's nonce tracks
// the search as it progresses.
//
// The search is split into batches of nonces. ctx and the attempt limit are
// checked between batches, and the smallest satisfying nonce of a batch
// wins, so the result doesn't depend on the number of workers.
func (bm *blockMiner) Mine(ctx context.Context, template *externalapi.BlockTemplate,
	target *big.Int) (*externalapi.DomainBlock, error) {

	if template.IsSealed() {
		return nil, errors.WithStack(ErrTemplateAlreadySealed)
	}
	if target == nil {
		return nil, errors.Wrap(pow.ErrMalformedTarget, "target is nil")
	}

	onEnd := logger.LogAndMeasureExecutionTime(log, "blockMiner.Mine")
	defer onEnd()

	// Transactions are fixed for the lifetime of the template
	merkleRoot := merkle.CalculateMerkleRoot(template.Transactions)

	attempts := uint64(0)
	for {
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ErrMiningAborted, "%s after %d attempts", ctx.Err(), attempts)
		default:
		}

		batchSize := bm.batchSize
		if bm.maxAttempts != 0 {
			remaining := bm.maxAttempts - attempts
			if remaining == 0 {
				return nil, errors.Wrapf(ErrMiningAborted, "reached the limit of %d attempts", bm.maxAttempts)
			}
			if batchSize > remaining {
				batchSize = remaining
			}
		}
		if nonceSpaceLeft := math.MaxUint64 - template.Nonce; batchSize > nonceSpaceLeft {
			batchSize = nonceSpaceLeft
		}
		if batchSize == 0 {
			return nil, errors.Wrapf(ErrMiningAborted, "went over all the nonce space after %d attempts", attempts)
		}

		nonce, hash, found := bm.searchBatch(template.PreviousHash, merkleRoot, template.Nonce, batchSize, target)
		if found {
			attempts += nonce - template.Nonce + 1
			atomic.AddUint64(&bm.hashesTried, nonce-template.Nonce+1)
			block := template.Seal(merkleRoot, nonce, hash)
			log.Infof("Found block %s with nonce %d after %d attempts", hash, nonce, attempts)
			return block, nil
		}

		attempts += batchSize
		atomic.AddUint64(&bm.hashesTried, batchSize)
		template.Nonce += batchSize
		log.Tracef("No block found in %d attempts, continuing from nonce %d", attempts, template.Nonce)
	}
}

// searchBatch tries the nonces in [start, start+size) and returns the
// smallest one whose block hash is below target
func (bm *blockMiner) searchBatch(previousHash string, merkleRoot string, start uint64, size uint64,
	target *big.Int) (nonce uint64, hash string, found bool) {

	if bm.workers == 1 {
		return searchStride(previousHash, merkleRoot, start, start+size, 1, target, nil)
	}

	// best holds the smallest satisfying nonce found so far by any worker,
	// so that workers stop once they passed it.
	best := uint64(math.MaxUint64)
	type result struct {
		nonce uint64
		hash  string
		found bool
	}
	results := make([]result, bm.workers)

	group := errgroup.Group{}
	for i := 0; i < bm.workers; i++ {
		worker := i
		group.Go(func() error {
			nonce, hash, found := searchStride(previousHash, merkleRoot, start+uint64(worker), start+size,
				uint64(bm.workers), target, &best)
			if found {
				results[worker] = result{nonce: nonce, hash: hash, found: true}
				lowerTo(&best, nonce)
			}
			return nil
		})
	}
	_ = group.Wait()

	for _, result := range results {
		if result.found && (!found || result.nonce < nonce) {
			nonce, hash, found = result.nonce, result.hash, true
		}
	}
	return nonce, hash, found
}

// searchStride tries nonces from, from+stride, ... below end. It stops early
// once the nonce exceeds the value pointed to by best, if given.
func searchStride(previousHash string, merkleRoot string, from uint64, end uint64, stride uint64,
	target *big.Int, best *uint64) (uint64, string, bool) {

	for nonce := from; nonce < end && nonce >= from; nonce += stride {
		if best != nil && nonce > atomic.LoadUint64(best) {
			return 0, "", false
		}
		hash := pow.CalculateBlockHash(previousHash, nonce, merkleRoot)
		if pow.CheckProofOfWorkWithTarget(hash, target) {
			return nonce, hash, true
		}
	}
	return 0, "", false
}

func lowerTo(value *uint64, candidate uint64) {
	for {
		current := atomic.LoadUint64(value)
		if candidate >= current || atomic.CompareAndSwapUint64(value, current, candidate) {
			return
		}
	}
}

// HashesTried returns the number of nonces tried since the miner was created
func (bm *blockMiner) HashesTried() uint64 {
	return atomic.LoadUint64(&bm.hashesTried)
}
