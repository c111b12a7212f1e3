package charm

import (
	"context"
	"fmt"
)

// RunAction executes a named one-shot operation, passing the administration
// CLI output through as the action result.
func (c *Charm) RunAction(ctx context.Context, name string) error {
	var results map[string]string
	var err error

	switch name {
	case "maintenance":
		results, err = c.actionMaintenance(ctx)
	case "add-missing-indices":
		results, err = c.actionAddMissingIndices(ctx)
	case "convert-filecache-bigint":
		results, err = c.actionConvertFilecacheBigint(ctx)
	case "add-trusted-domain":
		results, err = c.actionAddTrustedDomain(ctx)
	default:
		err = fmt.Errorf("unknown action %q", name)
	}

	if err != nil {
		_ = c.hook.ActionFail(ctx, err.Error())

		return err
	}

	return c.hook.ActionSet(ctx, results)
}

func (c *Charm) actionMaintenance(ctx context.Context) (map[string]string, error) {
	params, err := c.hook.ActionGet(ctx)
	if err != nil {
		return nil, err
	}

	enable, _ := params["enable"].(bool)

	output, err := c.occ.MaintenanceMode(ctx, enable)
	if err != nil {
		return nil, err
	}

	return map[string]string{"maintenance": output}, nil
}

func (c *Charm) actionAddMissingIndices(ctx context.Context) (map[string]string, error) {
	output, err := c.occ.AddMissingIndices(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]string{"output": output}, nil
}

func (c *Charm) actionConvertFilecacheBigint(ctx context.Context) (map[string]string, error) {
	output, err := c.occ.ConvertFilecacheBigint(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]string{"output": output}, nil
}

func (c *Charm) actionAddTrustedDomain(ctx context.Context) (map[string]string, error) {
	params, err := c.hook.ActionGet(ctx)
	if err != nil {
		return nil, err
	}

	domain, _ := params["domain"].(string)
	if domain == "" {
		return nil, fmt.Errorf("action add-trusted-domain requires a domain parameter")
	}

	current, err := c.occ.TrustedDomains(ctx)
	if err != nil {
		return nil, err
	}

	err = c.occ.AddTrustedDomain(ctx, domain, len(current))
	if err != nil {
		return nil, err
	}

	return map[string]string{"domain": domain}, nil
}
