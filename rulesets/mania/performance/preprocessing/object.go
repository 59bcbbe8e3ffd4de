package preprocessing

// Note is a single record of the producer-built, time-ascending column
// sequence. EndTime equals StartTime for instantaneous notes.
type Note struct {
	StartTime float64
	EndTime   float64
	Column    int
}

type DifficultyObject struct {
	listOfDiffs *[]*DifficultyObject
	Index       int

	BaseObject *Note

	DeltaTime float64

	StartTime float64

	EndTime float64
}

func NewDifficultyObject(note, lastNote *Note, listOfDiffs *[]*DifficultyObject, index int) *DifficultyObject {
	return &DifficultyObject{
		listOfDiffs: listOfDiffs,
		Index:       index,
		BaseObject:  note,
		DeltaTime:   note.StartTime - lastNote.StartTime,
		StartTime:   note.StartTime,
		EndTime:     note.EndTime,
	}
}

// CreateDifficultyObjects builds the evaluation view over a time-ascending
// note list. The first note has no predecessor and produces no entry.
func CreateDifficultyObjects(notes []*Note) []*DifficultyObject {
	diffObjects := make([]*DifficultyObject, 0, max(0, len(notes)-1))

	for i := 1; i < len(notes); i++ {
		diffObjects = append(diffObjects, NewDifficultyObject(notes[i], notes[i-1], &diffObjects, i-1))
	}

	return diffObjects
}

func (o *DifficultyObject) Previous(backwardsIndex int) *DifficultyObject {
	index := o.Index - (backwardsIndex + 1)

	if index < 0 {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) Next(forwardsIndex int) *DifficultyObject {
	index := o.Index + (forwardsIndex + 1)

	if index >= len(*o.listOfDiffs) {
		return nil
	}

	return (*o.listOfDiffs)[index]
}
