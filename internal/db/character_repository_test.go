package db_test

import (
	"github.com/udisondev/portalgate/internal/db"
	"github.com/udisondev/portalgate/internal/model"
)

func (s *RepositorySuite) newCharacter(charID int64, stacks map[uint32]int32) *model.Player {
	loc := model.NewLocation(100, 200, 30, 102).WithRotation(-12)
	p := model.NewPlayer(s.ids.NextPlayerID(), charID, "Traveler", loc, 7)
	for itemID, count := range stacks {
		item, err := model.NewItem(s.ids.NextItemID(), itemID, charID, count)
		s.Require().NoError(err)
		s.Require().NoError(p.Inventory().AddItem(item))
	}
	s.Require().NoError(s.chars.Create(s.ctx, p))
	return p
}

func (s *RepositorySuite) TestLoadPlayer() {
	created := s.newCharacter(1, map[uint32]int32{8000: 5, 8001: 1})

	p, err := s.chars.LoadPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.NotEqual(created.ObjectID(), p.ObjectID(), "fresh object id per load")
	s.Equal(int64(1), p.CharacterID())
	s.Equal("Traveler", p.Name())
	s.Equal(uint32(7), p.FactionID())
	s.Equal(created.Location(), p.Location())
	s.Equal(int64(5), p.Inventory().CountItems(8000))
	s.Equal(int64(1), p.Inventory().CountItems(8001))
}

func (s *RepositorySuite) TestLoadPlayerNotFound() {
	_, err := s.chars.LoadPlayer(s.ctx, 404)
	s.ErrorIs(err, db.ErrCharacterNotFound)
}

func (s *RepositorySuite) TestSaveInventoryAndPosition() {
	p := s.newCharacter(1, map[uint32]int32{8000: 5, 8001: 1})

	_, ok := p.Inventory().Consume(8001, 1)
	s.Require().True(ok)
	_, ok = p.Inventory().Consume(8000, 2)
	s.Require().True(ok)
	extra, err := model.NewItem(s.ids.NextItemID(), 8000, 1, 4)
	s.Require().NoError(err)
	s.Require().NoError(p.Inventory().AddItem(extra))
	p.SetLocation(model.NewLocation(-5, -6, 7, 129))

	s.Require().NoError(s.chars.Save(s.ctx, p))

	loaded, err := s.chars.LoadPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(model.NewLocation(-5, -6, 7, 129), loaded.Location())
	s.Equal(int64(7), loaded.Inventory().CountItems(8000), "stacks merged")
	s.Equal(1, loaded.Inventory().Count())
	s.Zero(loaded.Inventory().CountItems(8001), "emptied stack is gone")
}

func (s *RepositorySuite) TestSaveUnknownCharacter() {
	p := model.NewPlayer(s.ids.NextPlayerID(), 99, "Ghost", model.Location{}, 0)
	s.ErrorIs(s.chars.Save(s.ctx, p), db.ErrCharacterNotFound)
}
