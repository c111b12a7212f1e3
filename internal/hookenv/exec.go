package hookenv

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lxc/incus/v6/shared/subprocess"
	"gopkg.in/yaml.v3"
)

// ExecContext implements Context by shelling out to the Juju hook tools
// present on PATH inside a hook execution environment.
type ExecContext struct{}

// NewExecContext returns a hook tool backed Context.
func NewExecContext() *ExecContext {
	return &ExecContext{}
}

func (*ExecContext) run(ctx context.Context, tool string, args ...string) (string, error) {
	output, err := subprocess.RunCommandContext(ctx, tool, args...)
	if err != nil {
		return "", fmt.Errorf("hook tool %s: %w", tool, err)
	}

	return output, nil
}

func (e *ExecContext) runYAML(ctx context.Context, target any, tool string, args ...string) error {
	args = append(args, "--format=yaml")

	output, err := e.run(ctx, tool, args...)
	if err != nil {
		return err
	}

	return yaml.Unmarshal([]byte(output), target)
}

// IsLeader reports whether this unit currently holds application leadership.
func (e *ExecContext) IsLeader(ctx context.Context) (bool, error) {
	var leader bool

	err := e.runYAML(ctx, &leader, "is-leader")
	if err != nil {
		return false, err
	}

	return leader, nil
}

// ConfigGet returns the full charm configuration.
func (e *ExecContext) ConfigGet(ctx context.Context) (Config, error) {
	var config Config

	err := e.runYAML(ctx, &config, "config-get")
	if err != nil {
		return nil, err
	}

	return config, nil
}

// RelationIDs returns the active relation IDs for a relation name.
func (e *ExecContext) RelationIDs(ctx context.Context, name string) ([]string, error) {
	var ids []string

	err := e.runYAML(ctx, &ids, "relation-ids", name)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// RelationUnits returns the remote units present on a relation.
func (e *ExecContext) RelationUnits(ctx context.Context, relationID string) ([]string, error) {
	var units []string

	err := e.runYAML(ctx, &units, "relation-list", "-r", relationID)
	if err != nil {
		return nil, err
	}

	return units, nil
}

// RelationGet returns the given unit's settings on a relation.
func (e *ExecContext) RelationGet(ctx context.Context, relationID string, unit string) (map[string]string, error) {
	var values map[string]string

	err := e.runYAML(ctx, &values, "relation-get", "-r", relationID, "-", unit)
	if err != nil {
		return nil, err
	}

	return values, nil
}

// RelationGetApp returns an application databag on a relation.
func (e *ExecContext) RelationGetApp(ctx context.Context, relationID string, app string) (map[string]string, error) {
	var values map[string]string

	err := e.runYAML(ctx, &values, "relation-get", "--app", "-r", relationID, "-", app)
	if err != nil {
		return nil, err
	}

	return values, nil
}

// RelationSet writes settings into this unit's databag on a relation.
func (e *ExecContext) RelationSet(ctx context.Context, relationID string, values map[string]string) error {
	args := append([]string{"-r", relationID}, encodeValues(values)...)

	_, err := e.run(ctx, "relation-set", args...)

	return err
}

// RelationSetApp writes settings into the local application databag.
func (e *ExecContext) RelationSetApp(ctx context.Context, relationID string, values map[string]string) error {
	args := append([]string{"--app", "-r", relationID}, encodeValues(values)...)

	_, err := e.run(ctx, "relation-set", args...)

	return err
}

// PrivateAddress returns the unit's private network address.
func (e *ExecContext) PrivateAddress(ctx context.Context) (string, error) {
	var address string

	err := e.runYAML(ctx, &address, "unit-get", "private-address")
	if err != nil {
		return "", err
	}

	return address, nil
}

// StatusSet updates the unit workload status.
func (e *ExecContext) StatusSet(ctx context.Context, status Status, message string) error {
	_, err := e.run(ctx, "status-set", string(status), message)

	return err
}

// OpenPort opens a port range to external traffic.
func (e *ExecContext) OpenPort(ctx context.Context, port string) error {
	_, err := e.run(ctx, "open-port", port)

	return err
}

// ApplicationVersionSet reports the installed workload version.
func (e *ExecContext) ApplicationVersionSet(ctx context.Context, version string) error {
	_, err := e.run(ctx, "application-version-set", version)

	return err
}

// ActionGet returns the parameters of the running action.
func (e *ExecContext) ActionGet(ctx context.Context) (map[string]any, error) {
	var params map[string]any

	err := e.runYAML(ctx, &params, "action-get")
	if err != nil {
		return nil, err
	}

	return params, nil
}

// ActionSet records results for the running action.
func (e *ExecContext) ActionSet(ctx context.Context, results map[string]string) error {
	_, err := e.run(ctx, "action-set", encodeValues(results)...)

	return err
}

// ActionFail marks the running action as failed.
func (e *ExecContext) ActionFail(ctx context.Context, message string) error {
	_, err := e.run(ctx, "action-fail", message)

	return err
}

// Log sends a message to the Juju debug log, falling back to local logging.
func (e *ExecContext) Log(ctx context.Context, message string) {
	_, err := e.run(ctx, "juju-log", message)
	if err != nil {
		slog.Debug(message)
	}
}

// encodeValues turns a settings map into deterministic key=value arguments.
func encodeValues(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, key := range keys {
		args = append(args, key+"="+values[key])
	}

	return args
}
