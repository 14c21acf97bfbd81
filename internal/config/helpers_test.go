package config

import (
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/unique"
)

func firstCrate(s *entity.Store) unique.Key {
	for key, typ := range s.Types.Iter() {
		if typ == entity.Crate {
			return key
		}
	}
	return unique.Null()
}
