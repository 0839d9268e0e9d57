package session

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/progression"
)

// The session is the physics.Handler for its own world. Every handler is a
// no-op outside an active, unpaused run.

func (s *Session) ObstacleHit(player, obstacle ecs.Entity) bool {
	if !s.active() || !s.world.IsAlive(obstacle) {
		return false
	}
	if s.powerups.HatActive() {
		return false
	}
	s.ledger.RegisterCollision()
	s.world.DestroyEntity(obstacle)
	return s.killPlayer("hit an obstacle")
}

func (s *Session) TokenCollected(player, token ecs.Entity) bool {
	if !s.active() {
		return false
	}
	tok, ok := ecs.Get(s.world, token, component.TokenComponent)
	if !ok {
		return false
	}
	s.ledger.CollectToken(tok.Kind, tok.HighValue)
	s.world.DestroyEntity(token)
	return true
}

func (s *Session) EnemyHit(player, enemy ecs.Entity) bool {
	if !s.active() || !ecs.Has(s.world, enemy, component.EnemyComponent) {
		return false
	}
	if s.powerups.HatActive() {
		s.world.DestroyEntity(enemy)
		s.ledger.RegisterEnemyDefeat(s.gameplay.Enemies.DefeatPoints)
		return true
	}
	return s.killPlayer("hit an enemy")
}

func (s *Session) PowerUpCollected(player, powerUp ecs.Entity) bool {
	if !s.active() {
		return false
	}
	pu, ok := ecs.Get(s.world, powerUp, component.PowerUpComponent)
	if !ok || pu.Collected {
		return false
	}
	pu.Collected = true
	s.world.DestroyEntity(powerUp)

	switch pu.Kind {
	case component.PowerUpHat:
		s.powerups.CollectHat()
		s.difficulty.Reapply(s.world)
		s.spawner.Rearm()
		s.ledger.CheckAchievements()
	case component.PowerUpMagnet:
		s.powerups.CollectMagnet()
	}
	return true
}

func (s *Session) ProjectileHitPlayer(projectile, player ecs.Entity) bool {
	if !s.active() {
		return false
	}
	p, ok := ecs.Get(s.world, projectile, component.ProjectileComponent)
	if !ok || p.Owner != component.OwnerBoss {
		return false
	}
	return s.damagePlayer(p.Damage, func() { s.world.DestroyEntity(projectile) })
}

func (s *Session) ProjectileHitBoss(projectile, boss ecs.Entity) bool {
	if !s.active() || s.encounter == nil {
		return false
	}
	p, ok := ecs.Get(s.world, projectile, component.ProjectileComponent)
	if !ok || p.Owner != component.OwnerPlayer {
		return false
	}
	s.world.DestroyEntity(projectile)
	return s.encounter.TakeDamage(p.Damage)
}

func (s *Session) BossContact(player, boss ecs.Entity) bool {
	if !s.active() || s.encounter == nil || s.encounter.IsDefeated() {
		return false
	}
	return s.damagePlayer(s.bossSpec.ContactDamage, nil)
}

// damagePlayer applies damage through the player's invulnerability window.
// onHit runs only when the damage was accepted.
func (s *Session) damagePlayer(amount int, onHit func()) bool {
	st := s.playerState()
	if !st.TakeDamage(amount) {
		return false
	}
	if onHit != nil {
		onHit()
	}
	s.events.Emit(event.PlayerDamaged, st.Health)
	if st.IsDead {
		s.events.Push(event.Event{Kind: event.PlayerDied, Label: "shot down"})
		s.gameOver()
	}
	return true
}

// BonusTotals returns the points earned per category this run.
func (s *Session) BonusTotals() map[progression.Category]int {
	out := make(map[progression.Category]int, len(s.ledger.PointsByCategory))
	for k, v := range s.ledger.PointsByCategory {
		out[k] = v
	}
	return out
}
