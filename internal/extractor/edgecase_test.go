package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for edge-case extraction:
// - Qualified use-fixture calls become setup chunks, named by their first
//   string argument or the default
// - Properties of the object passed to an extend-fixture call become
//   fixture chunks; bare use(...) calls inside fixture bodies do not
// - Exported constants with object or array initializers become constant
//   chunks; scalars and unexported declarations do not
// - Top-level IIFEs are extracted with their own or the sentinel name
// - When nothing matches, the generic classifier runs instead

func TestExtractEdgeCases_ExportedConstants(t *testing.T) {
	t.Parallel()

	source := `/** Retry policy for flaky environments. */
export const CONFIG = { retries: 3 };

export const NAMES = ['alice', 'bob'];

export const LIMIT = 42;

const internal = { hidden: true };
`
	chunks := extractObject(t, "src/config.ts", source, PlaywrightOptions{})
	require.Len(t, chunks, 2)

	assert.Equal(t, "CONFIG", chunks[0].Name)
	assert.Equal(t, KindConstant, chunks[0].Kind)
	assert.Equal(t, "Retry policy for flaky environments.", chunks[0].Documentation)
	assert.Equal(t, 2, chunks[0].Location.StartLine)

	assert.Equal(t, "NAMES", chunks[1].Name)
	assert.Equal(t, KindConstant, chunks[1].Kind)
}

func TestExtractEdgeCases_FixtureProperties(t *testing.T) {
	t.Parallel()

	source := `import { test as base } from '@playwright/test';
import { LoginPage } from '../pages/LoginPage';

export const test = base.extend({
  loginPage: async ({ page }, use) => {
    await use(new LoginPage(page));
  },

  defaultUser: { name: 'admin', role: 'root' },
});
`
	chunks := extractObject(t, "tests/fixtures.ts", source, PlaywrightOptions{})
	require.Len(t, chunks, 2)

	assert.Equal(t, "loginPage", chunks[0].Name)
	assert.Equal(t, KindFixture, chunks[0].Kind)
	assert.Equal(t, "defaultUser", chunks[1].Name)
	assert.Equal(t, KindFixture, chunks[1].Kind)
}

func TestExtractEdgeCases_SetupCalls(t *testing.T) {
	t.Parallel()

	source := `import { test } from './fixtures';

test.use({ storageState: 'playwright/.auth/user.json' });

browser.use('chromium', { headless: true });
`
	chunks := extractSpec(t, "global.setup.ts", source)
	require.Len(t, chunks, 2)

	assert.Equal(t, "Setup", chunks[0].Name)
	assert.Equal(t, KindSetup, chunks[0].Kind)
	assert.Equal(t, "chromium", chunks[1].Name)
	assert.Equal(t, KindSetup, chunks[1].Kind)
}

func TestExtractEdgeCases_IIFE(t *testing.T) {
	t.Parallel()

	source := `(function bootstrap() {
  console.log('ready');
})();

(() => {
  window.ready = true;
})();

const result = (function () {
  return 1;
})();
`
	chunks := extractObject(t, "scripts/init.ts", source, PlaywrightOptions{})
	require.Len(t, chunks, 2)

	assert.Equal(t, "bootstrap", chunks[0].Name)
	assert.Equal(t, KindIIFE, chunks[0].Kind)
	assert.Equal(t, 1, chunks[0].Location.StartLine)
	assert.Equal(t, 3, chunks[0].Location.EndLine)

	// Anonymous arrow IIFE gets the sentinel name. The assigned IIFE is a
	// declaration, not a top-level statement, and is not extracted.
	assert.Equal(t, AnonymousName, chunks[1].Name)
	assert.Equal(t, KindIIFE, chunks[1].Kind)
}

func TestExtractEdgeCases_GenericFallback(t *testing.T) {
	t.Parallel()

	source := `function helper() {
  return 1;
}
`
	chunks := extractObject(t, "src/util.ts", source, PlaywrightOptions{})
	require.Len(t, chunks, 1)
	assert.Equal(t, "helper", chunks[0].Name)
	assert.Equal(t, KindFunction, chunks[0].Kind)
}
