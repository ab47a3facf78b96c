// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import (
	"fmt"

	"github.com/tomtom215/cinemood/internal/mood"
)

// TMDB genre identifiers referenced by the mood table.
const (
	genreAction    = 28
	genreAdventure = 12
	genreComedy    = 35
	genreDrama     = 18
	genreFamily    = 10751
	genreFantasy   = 14
	genreHorror    = 27
	genreMusic     = 10402
	genreMystery   = 9648
	genreRomance   = 10749
	genreThriller  = 53
	genreDocs      = 99
)

// moodGenres maps each mood to its catalog genre set. Fixed domain
// configuration, never derived at runtime. The order within each list is
// meaningful: it is the order genres appear in the genre filter.
var moodGenres = map[mood.ID][]int{
	mood.Happy:       {genreComedy, genreFamily, genreMusic},
	mood.Sad:         {genreDrama, genreRomance},
	mood.Excited:     {genreAction, genreAdventure, genreThriller},
	mood.Calm:        {genreFamily, genreDocs},
	mood.Adventurous: {genreAdventure, genreFantasy},
	mood.Romantic:    {genreRomance, genreComedy},
	mood.Thoughtful:  {genreDrama, genreMystery},
	mood.Scared:      {genreHorror, genreThriller},
}

// GenresForMood returns a copy of the mood's target genre set, or an error
// when the mood has no mapping. An unmapped mood is a configuration bug.
func GenresForMood(id mood.ID) ([]int, error) {
	genres, ok := moodGenres[id]
	if !ok {
		return nil, fmt.Errorf("no genre mapping for mood %q", id)
	}
	out := make([]int, len(genres))
	copy(out, genres)
	return out, nil
}
