package hookenv

import (
	"context"
	"errors"
)

// Fake is an in-memory Context used by handler tests.
type Fake struct {
	Leader  bool
	Config  Config
	Address string

	// AppName and Unit identify the local side for databag writes.
	AppName string
	Unit    string

	// Relations maps relation ID to unit name to settings.
	Relations map[string]map[string]map[string]string

	// AppData maps relation ID to application name to settings.
	AppData map[string]map[string]map[string]string

	// RelationNames maps relation name to relation IDs.
	RelationNames map[string][]string

	Status        Status
	StatusMessage string
	OpenedPorts   []string
	Version       string

	ActionParams  map[string]any
	ActionResults map[string]string
	ActionFailure string

	Messages []string
}

// NewFake returns an empty Fake ready for use.
func NewFake() *Fake {
	return &Fake{
		AppName:       "nextcloud",
		Unit:          "nextcloud/0",
		Config:        Config{},
		Relations:     map[string]map[string]map[string]string{},
		AppData:       map[string]map[string]map[string]string{},
		RelationNames: map[string][]string{},
	}
}

// SetRelation populates a remote unit's databag on a relation.
func (f *Fake) SetRelation(relationID string, unit string, values map[string]string) {
	if f.Relations[relationID] == nil {
		f.Relations[relationID] = map[string]map[string]string{}
	}

	f.Relations[relationID][unit] = values
}

// SetAppData populates an application databag on a relation.
func (f *Fake) SetAppData(relationID string, app string, values map[string]string) {
	if f.AppData[relationID] == nil {
		f.AppData[relationID] = map[string]map[string]string{}
	}

	f.AppData[relationID][app] = values
}

func (f *Fake) IsLeader(_ context.Context) (bool, error) {
	return f.Leader, nil
}

func (f *Fake) ConfigGet(_ context.Context) (Config, error) {
	return f.Config, nil
}

func (f *Fake) RelationIDs(_ context.Context, name string) ([]string, error) {
	return f.RelationNames[name], nil
}

func (f *Fake) RelationUnits(_ context.Context, relationID string) ([]string, error) {
	units := make([]string, 0, len(f.Relations[relationID]))
	for unit := range f.Relations[relationID] {
		units = append(units, unit)
	}

	return units, nil
}

func (f *Fake) RelationGet(_ context.Context, relationID string, unit string) (map[string]string, error) {
	return f.Relations[relationID][unit], nil
}

func (f *Fake) RelationGetApp(_ context.Context, relationID string, app string) (map[string]string, error) {
	return f.AppData[relationID][app], nil
}

func (f *Fake) RelationSet(_ context.Context, relationID string, values map[string]string) error {
	if f.Relations[relationID] == nil {
		f.Relations[relationID] = map[string]map[string]string{}
	}

	local := f.Relations[relationID][f.Unit]
	if local == nil {
		local = map[string]string{}
	}

	for key, value := range values {
		local[key] = value
	}

	f.Relations[relationID][f.Unit] = local

	return nil
}

func (f *Fake) RelationSetApp(_ context.Context, relationID string, values map[string]string) error {
	if !f.Leader {
		return errors.New("cannot write application settings as a non-leader")
	}

	if f.AppData[relationID] == nil {
		f.AppData[relationID] = map[string]map[string]string{}
	}

	local := f.AppData[relationID][f.AppName]
	if local == nil {
		local = map[string]string{}
	}

	for key, value := range values {
		local[key] = value
	}

	f.AppData[relationID][f.AppName] = local

	return nil
}

func (f *Fake) PrivateAddress(_ context.Context) (string, error) {
	return f.Address, nil
}

func (f *Fake) StatusSet(_ context.Context, status Status, message string) error {
	f.Status = status
	f.StatusMessage = message

	return nil
}

func (f *Fake) OpenPort(_ context.Context, port string) error {
	f.OpenedPorts = append(f.OpenedPorts, port)

	return nil
}

func (f *Fake) ApplicationVersionSet(_ context.Context, version string) error {
	f.Version = version

	return nil
}

func (f *Fake) ActionGet(_ context.Context) (map[string]any, error) {
	return f.ActionParams, nil
}

func (f *Fake) ActionSet(_ context.Context, results map[string]string) error {
	f.ActionResults = results

	return nil
}

func (f *Fake) ActionFail(_ context.Context, message string) error {
	f.ActionFailure = message

	return nil
}

func (f *Fake) Log(_ context.Context, message string) {
	f.Messages = append(f.Messages, message)
}
