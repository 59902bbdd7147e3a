package movie

// UpdateRequest is a sparse movie update. Nil fields are left unchanged;
// there is no way to clear a field through it.
type UpdateRequest struct {
	Title      *string
	Year       *int
	Plot       *string
	FullPlot   *string
	Genres     []string
	Directors  []string
	Writers    []string
	Cast       []string
	Countries  []string
	Languages  []string
	Rated      *string
	Runtime    *int
	Poster     *string
	IMDBRating *float64
	IMDBVotes  *int
}

// Change is a single field assignment of an update.
type Change struct {
	Field string
	Value any
}

// Changes lists the provided fields in a stable order, keyed by their
// collection field names. It fails with ErrInvalidUpdate when nothing is set.
func (r UpdateRequest) Changes() ([]Change, error) {
	var changes []Change
	set := func(field string, value any) {
		changes = append(changes, Change{Field: field, Value: value})
	}

	if r.Title != nil {
		set(FieldTitle, *r.Title)
	}
	if r.Year != nil {
		set(FieldYear, *r.Year)
	}
	if r.Plot != nil {
		set(FieldPlot, *r.Plot)
	}
	if r.FullPlot != nil {
		set(FieldFullPlot, *r.FullPlot)
	}
	if r.Genres != nil {
		set(FieldGenres, r.Genres)
	}
	if r.Directors != nil {
		set(FieldDirectors, r.Directors)
	}
	if r.Writers != nil {
		set(FieldWriters, r.Writers)
	}
	if r.Cast != nil {
		set(FieldCast, r.Cast)
	}
	if r.Countries != nil {
		set(FieldCountries, r.Countries)
	}
	if r.Languages != nil {
		set(FieldLanguages, r.Languages)
	}
	if r.Rated != nil {
		set(FieldRated, *r.Rated)
	}
	if r.Runtime != nil {
		set(FieldRuntime, *r.Runtime)
	}
	if r.Poster != nil {
		set(FieldPoster, *r.Poster)
	}
	if r.IMDBRating != nil {
		set(FieldIMDBRating, *r.IMDBRating)
	}
	if r.IMDBVotes != nil {
		set(FieldIMDBVotes, *r.IMDBVotes)
	}

	if len(changes) == 0 {
		return nil, ErrInvalidUpdate
	}
	return changes, nil
}

func (r UpdateRequest) IsEmpty() bool {
	_, err := r.Changes()
	return err != nil
}
