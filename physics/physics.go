package physics

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/tuning"
)

// Handler receives overlap events. Each method reports whether the
// interaction took effect, e.g. whether damage was accepted.
type Handler interface {
	ObstacleHit(player, obstacle ecs.Entity) bool
	TokenCollected(player, token ecs.Entity) bool
	EnemyHit(player, enemy ecs.Entity) bool
	PowerUpCollected(player, powerUp ecs.Entity) bool
	ProjectileHitPlayer(projectile, player ecs.Entity) bool
	ProjectileHitBoss(projectile, boss ecs.Entity) bool
	BossContact(player, boss ecs.Entity) bool
}

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeObstacle
	collisionTypeToken
	collisionTypePowerUp
	collisionTypeEnemy
	collisionTypeBossProjectile
	collisionTypeMissile
	collisionTypeBoss
)

const (
	categoryPlayer uint = 1 << iota
	categoryStage
	categoryBoss
	categoryMissile
)

// obstacleOverhang extends pipes past the field edges so there is no gap
// around the top and bottom.
const obstacleOverhang = 1000.0

type contact struct {
	kind cp.CollisionType
	a, b ecs.Entity
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	player bool
}

// Space owns the Chipmunk space. Only the player is simulated; every other
// entity is a gravity-free body teleported to its transform each tick so that
// cp reports overlaps. Every overlap is recorded on each step it lasts and
// dispatched to the handler after the step, never solved.
type Space struct {
	spec    *tuning.GameplaySpec
	handler Handler

	space         *cp.Space
	handlersReady bool

	entities      map[ecs.Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]ecs.Entity
	contacts      []contact
}

func NewSpace(spec *tuning.GameplaySpec, handler Handler) *Space {
	s := &Space{spec: spec, handler: handler}
	s.Reset()
	return s
}

// Reset drops every body. The next Update rebuilds bodies from the world.
func (s *Space) Reset() {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: 0, Y: s.spec.Player.Gravity})
	s.space = space
	s.handlersReady = false
	s.entities = make(map[ecs.Entity]*bodyInfo)
	s.shapeToEntity = make(map[*cp.Shape]ecs.Entity)
	s.contacts = s.contacts[:0]
}

// SetSpec swaps the tuning used from the next Reset on.
func (s *Space) SetSpec(spec *tuning.GameplaySpec) {
	if spec != nil {
		s.spec = spec
	}
}

func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

func (s *Space) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.ensureHandlers()
	s.cleanupEntities(w)
	s.syncEntities(w)

	s.contacts = s.contacts[:0]
	s.space.Step(w.Dt() / 1000)

	s.syncPlayer(w)
	s.dispatch(w)
}

// Flap sets the player's vertical velocity.
func (s *Space) Flap(w *ecs.World, velocity float64) {
	e, _, ok := ecs.First(w, component.PlayerComponent)
	if !ok {
		return
	}
	if info, ok := s.entities[e]; ok {
		info.body.SetVelocity(0, velocity)
	}
	if v, ok := ecs.Get(w, e, component.VelocityComponent); ok {
		v.Y = velocity
	}
}

func (s *Space) ensureHandlers() {
	if s.handlersReady {
		return
	}
	pairs := []struct{ a, b cp.CollisionType }{
		{collisionTypePlayer, collisionTypeObstacle},
		{collisionTypePlayer, collisionTypeToken},
		{collisionTypePlayer, collisionTypePowerUp},
		{collisionTypePlayer, collisionTypeEnemy},
		{collisionTypeBossProjectile, collisionTypePlayer},
		{collisionTypePlayer, collisionTypeBoss},
		{collisionTypeMissile, collisionTypeBoss},
	}
	for _, p := range pairs {
		kind := p.b
		h := s.space.NewCollisionHandler(p.a, p.b)
		h.UserData = s
		h.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
			return recordContact(arb, userData, kind)
		}
	}
	s.handlersReady = true
}

// recordContact queues the pair and rejects the collision for this step so
// cp never pushes bodies apart. It runs every step the shapes overlap, so a
// contact the handler turned down is offered again on the next step.
func recordContact(arb *cp.Arbiter, userData interface{}, kind cp.CollisionType) bool {
	sys, ok := userData.(*Space)
	if !ok || sys == nil {
		return false
	}
	shapeA, shapeB := arb.Shapes()
	a, okA := sys.shapeToEntity[shapeA]
	b, okB := sys.shapeToEntity[shapeB]
	if !okA || !okB {
		return false
	}
	sys.contacts = append(sys.contacts, contact{kind: kind, a: a, b: b})
	return false
}

func (s *Space) dispatch(w *ecs.World) {
	if s.handler == nil {
		return
	}
	for _, c := range s.contacts {
		if !w.IsAlive(c.a) || !w.IsAlive(c.b) {
			continue
		}
		switch c.kind {
		case collisionTypeObstacle:
			s.handler.ObstacleHit(c.a, c.b)
		case collisionTypeToken:
			s.handler.TokenCollected(c.a, c.b)
		case collisionTypePowerUp:
			s.handler.PowerUpCollected(c.a, c.b)
		case collisionTypeEnemy:
			s.handler.EnemyHit(c.a, c.b)
		case collisionTypePlayer:
			s.handler.ProjectileHitPlayer(c.a, c.b)
		case collisionTypeBoss:
			if ecs.Has(w, c.a, component.PlayerComponent) {
				s.handler.BossContact(c.a, c.b)
			} else {
				s.handler.ProjectileHitBoss(c.a, c.b)
			}
		}
	}
}

func (s *Space) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.ColliderComponent, component.TransformComponent, func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		info, ok := s.entities[e]
		if !ok {
			info = s.createBody(w, e, col, t)
			if info == nil {
				return
			}
			s.entities[e] = info
		}
		if info.player {
			return
		}
		info.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		info.body.SetVelocity(0, 0)
	})
}

func (s *Space) syncPlayer(w *ecs.World) {
	for e, info := range s.entities {
		if !info.player {
			continue
		}
		pos := info.body.Position()
		vel := info.body.Velocity()
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			t.X = pos.X
			t.Y = pos.Y
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent); ok {
			v.X = vel.X
			v.Y = vel.Y
		}
	}
}

func (s *Space) createBody(w *ecs.World, e ecs.Entity, col *component.Collider, t *component.Transform) *bodyInfo {
	ctype, category, mask := s.classify(w, e)
	if ctype == 0 {
		return nil
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})

	info := &bodyInfo{body: body, player: ctype == collisionTypePlayer}
	if info.player {
		maxFall := s.spec.Player.MaxFallSpeed
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(b, gravity, damping, dt)
			v := b.Velocity()
			if maxFall > 0 && v.Y > maxFall {
				v.Y = maxFall
			}
			b.SetVelocity(0, v.Y)
		})
	} else {
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(b, cp.Vector{}, damping, dt)
		})
	}

	switch col.Shape {
	case component.ColliderCircle:
		info.shapes = []*cp.Shape{cp.NewCircle(body, col.Radius, cp.Vector{})}
	case component.ColliderBox:
		info.shapes = []*cp.Shape{cp.NewBox(body, col.Width, col.Height, 0)}
	case component.ColliderGapPair:
		o, ok := ecs.Get(w, e, component.ObstacleComponent)
		if !ok {
			return nil
		}
		half := col.Width / 2
		center := o.GapCenter()
		gap := o.GapSize()
		top := cp.BB{L: -half, B: -center - obstacleOverhang, R: half, T: -gap / 2}
		bottom := cp.BB{L: -half, B: gap / 2, R: half, T: s.spec.Field.Height - center + obstacleOverhang}
		info.shapes = []*cp.Shape{cp.NewBox2(body, top, 0), cp.NewBox2(body, bottom, 0)}
	default:
		log.Printf("physics: entity %s has unknown collider shape %d", e, col.Shape)
		return nil
	}

	filter := cp.ShapeFilter{Categories: category, Mask: mask}
	s.space.AddBody(body)
	for _, shape := range info.shapes {
		shape.SetCollisionType(ctype)
		shape.SetFilter(filter)
		s.space.AddShape(shape)
		s.shapeToEntity[shape] = e
	}
	return info
}

// classify maps an entity to its collision type and filter bits.
func (s *Space) classify(w *ecs.World, e ecs.Entity) (cp.CollisionType, uint, uint) {
	switch {
	case ecs.Has(w, e, component.PlayerComponent):
		return collisionTypePlayer, categoryPlayer, categoryStage | categoryBoss
	case ecs.Has(w, e, component.ObstacleComponent):
		return collisionTypeObstacle, categoryStage, categoryPlayer
	case ecs.Has(w, e, component.TokenComponent):
		return collisionTypeToken, categoryStage, categoryPlayer
	case ecs.Has(w, e, component.PowerUpComponent):
		return collisionTypePowerUp, categoryStage, categoryPlayer
	case ecs.Has(w, e, component.EnemyComponent):
		return collisionTypeEnemy, categoryStage, categoryPlayer
	case ecs.Has(w, e, component.BossComponent):
		return collisionTypeBoss, categoryBoss, categoryPlayer | categoryMissile
	}
	if p, ok := ecs.Get(w, e, component.ProjectileComponent); ok {
		if p.Owner == component.OwnerPlayer {
			return collisionTypeMissile, categoryMissile, categoryBoss
		}
		return collisionTypeBossProjectile, categoryStage, categoryPlayer
	}
	return 0, 0, 0
}

func (s *Space) cleanupEntities(w *ecs.World) {
	for e, info := range s.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.ColliderComponent) {
			continue
		}
		for _, shape := range info.shapes {
			s.space.RemoveShape(shape)
			delete(s.shapeToEntity, shape)
		}
		s.space.RemoveBody(info.body)
		delete(s.entities, e)
	}
}
