package game

import (
	"github.com/lixenwraith/vi-runner/audio"
	"github.com/lixenwraith/vi-runner/component"
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/log"
)

const (
	ScoreEnemy = 10
	ScoreBlock = 1
)

func (s *Session) registerRules() error {
	n := s.world.Collisions()
	rules := []func() error{
		func() error { return n.AddHandler(TagBullet, TagEnemy, s.bulletHitsEnemy) },
		func() error { return n.AddHandler(TagBullet, TagPlayer, s.bulletHitsPlayer) },
		func() error { return n.AddHandler(TagBullet, TagBlock, s.bulletHitsBlock) },
		func() error { return n.AddBeginHandler(TagPlayer, TagEnemy, s.playerHitsEnemy) },
	}
	for _, add := range rules {
		if err := add(); err != nil {
			return err
		}
	}
	return nil
}

func owner(bullet *engine.Object) engine.Tag {
	tag, _ := component.UserValue[engine.Tag](bullet)
	return tag
}

// Enemy bullets pass through enemies
func (s *Session) bulletHitsEnemy(bullet, enemy *engine.Object) {
	if owner(bullet) != TagPlayer || !bullet.IsActive() || !enemy.IsActive() {
		return
	}
	bullet.RequestRemoval()
	enemy.RequestRemoval()
	s.score += ScoreEnemy
	s.sounds.Play(audio.SoundExplosion)
}

func (s *Session) bulletHitsPlayer(bullet, player *engine.Object) {
	if owner(bullet) == TagPlayer || !bullet.IsActive() {
		return
	}
	bullet.RequestRemoval()
	s.damage(player)
}

func (s *Session) bulletHitsBlock(bullet, block *engine.Object) {
	if !bullet.IsActive() {
		return
	}
	bullet.RequestRemoval()
	if h, err := engine.GetAs[*component.Highlightable](block.Components(), component.KindHighlightable); err == nil {
		if h.Toggle() && owner(bullet) == TagPlayer {
			s.score += ScoreBlock
		}
	}
	s.sounds.Play(audio.SoundHit)
}

// Contact damage counts once per touch, not per overlapping tick
func (s *Session) playerHitsEnemy(player, enemy *engine.Object) {
	if !enemy.IsActive() {
		return
	}
	enemy.RequestRemoval()
	s.damage(player)
}

func (s *Session) damage(player *engine.Object) {
	if s.lives <= 0 {
		return
	}
	s.lives--
	s.sounds.Play(audio.SoundDamage)
	s.logger.Debug("player hit", log.Int("lives", s.lives))
	if s.lives == 0 {
		player.RequestRemoval()
	}
}
