package reactor

import (
	"context"

	pool "github.com/jolestar/go-commons-pool/v2"

	"github.com/emberkv/ember/arena"
)

// arenaFactory mints arena.Arena instances for the pool, all sized to the
// same capacity: a fresh TCP connection borrows one for its lifetime and
// returns it on disconnect instead of paying an allocation for every
// reconnect.
type arenaFactory struct {
	capacity int
}

func (f *arenaFactory) MakeObject(ctx context.Context) (*pool.PooledObject, error) {
	return pool.NewPooledObject(arena.New(f.capacity)), nil
}

func (f *arenaFactory) DestroyObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}

func (f *arenaFactory) ValidateObject(ctx context.Context, object *pool.PooledObject) bool {
	return true
}

func (f *arenaFactory) ActivateObject(ctx context.Context, object *pool.PooledObject) error {
	return nil
}

func (f *arenaFactory) PassivateObject(ctx context.Context, object *pool.PooledObject) error {
	a := object.Object.(*arena.Arena)
	a.Reset()
	return nil
}

// ArenaPool hands out arena.Arena instances to connections and reclaims
// them on disconnect via Passivate, which resets the arena before it is
// reused.
type ArenaPool struct {
	pool *pool.ObjectPool
}

// NewArenaPool builds a pool of arenas, each with the given buffer
// capacity, using the default go-commons-pool sizing (bounded growth,
// LIFO reuse).
func NewArenaPool(ctx context.Context, capacity int) *ArenaPool {
	cfg := pool.NewDefaultPoolConfig()
	return &ArenaPool{pool: pool.NewObjectPool(ctx, &arenaFactory{capacity: capacity}, cfg)}
}

// Borrow hands out an arena for the lifetime of one connection.
func (p *ArenaPool) Borrow(ctx context.Context) (*arena.Arena, error) {
	obj, err := p.pool.BorrowObject(ctx)
	if err != nil {
		return nil, err
	}
	return obj.(*arena.Arena), nil
}

// Return gives an arena back to the pool once its connection closes.
func (p *ArenaPool) Return(ctx context.Context, a *arena.Arena) error {
	return p.pool.ReturnObject(ctx, a)
}
