package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the test-file strategy:
// - Grouped tests carry the suite name of their nearest enclosing describe
// - Standalone tests are emitted exactly once with an empty suite name
// - Nested describes own their tests; nothing is double-counted
// - Options objects between the title and callback are tolerated
// - Lifecycle-named tests (before*/after*) are skipped
// - Documentation resolves doc comment, then plain comment, then the name
// - Files with neither groups nor tests fall back to edge-case extraction

func extractSpec(t *testing.T, file, source string) []Chunk {
	t.Helper()
	tree := parseSource(t, source)
	return ExtractPlaywright(file, []byte(source), tree.RootNode(), PlaywrightOptions{})
}

func TestExtractTestFile_GroupedTests(t *testing.T) {
	t.Parallel()

	source := `import { test, expect } from '@playwright/test';

test.describe('Login', () => {
  test('logs in', async ({ page }) => {
    await expect(page).toHaveURL('/home');
  });

  /** Rejects bad credentials and keeps the form visible. */
  test('rejects bad credentials', async ({ page }) => {
    await expect(page.locator('.error')).toBeVisible();
  });

  // Wait for the redirect before reading the banner.
  test('shows the banner', async ({ page }) => {
    await expect(page.locator('.banner')).toBeVisible();
  });
});
`
	chunks := extractSpec(t, "tests/login.spec.ts", source)
	require.Len(t, chunks, 3)

	for _, chunk := range chunks {
		assert.Equal(t, KindTest, chunk.Kind)
		assert.Equal(t, "Login", chunk.TestSuiteName)
	}

	assert.Equal(t, "logs in", chunks[0].Name)
	assert.Equal(t, "logs in", chunks[0].TestCaseName)
	// No comment present: the name itself serves as documentation.
	assert.Equal(t, "logs in", chunks[0].Documentation)
	assert.Equal(t, 4, chunks[0].Location.StartLine)

	assert.Equal(t, "rejects bad credentials", chunks[1].Name)
	assert.Equal(t, "Rejects bad credentials and keeps the form visible.", chunks[1].Documentation)

	assert.Equal(t, "shows the banner", chunks[2].Name)
	assert.Equal(t, "Wait for the redirect before reading the banner.", chunks[2].Documentation)
}

func TestExtractTestFile_StandaloneTests(t *testing.T) {
	t.Parallel()

	source := `import { test, expect, it } from '@playwright/test';

test('standalone passes', async ({ page }) => {
  await expect(page).toBeDefined();
});

test.describe('Suite', () => {
  test('grouped case', async () => {});
});

it.only('focused case', () => {});
`
	chunks := extractSpec(t, "tests/mixed.spec.ts", source)
	require.Len(t, chunks, 3)

	// The grouped scan runs first; standalone tests follow in source order.
	assert.Equal(t, "grouped case", chunks[0].Name)
	assert.Equal(t, "Suite", chunks[0].TestSuiteName)

	assert.Equal(t, "standalone passes", chunks[1].Name)
	assert.Empty(t, chunks[1].TestSuiteName)

	assert.Equal(t, "focused case", chunks[2].Name)
	assert.Empty(t, chunks[2].TestSuiteName)
}

func TestExtractTestFile_NestedGroups(t *testing.T) {
	t.Parallel()

	source := `test.describe('Outer', () => {
  test('outer case', () => {});

  test.describe('Inner', () => {
    test('inner case', () => {});
  });
});
`
	chunks := extractSpec(t, "tests/nested.spec.ts", source)
	require.Len(t, chunks, 2)

	assert.Equal(t, "outer case", chunks[0].Name)
	assert.Equal(t, "Outer", chunks[0].TestSuiteName)
	assert.Equal(t, "inner case", chunks[1].Name)
	assert.Equal(t, "Inner", chunks[1].TestSuiteName)
}

func TestExtractTestFile_OptionsObject(t *testing.T) {
	t.Parallel()

	source := `test.describe('Tagged', { tag: '@smoke' }, () => {
  test('runs tagged', () => {});
});
`
	chunks := extractSpec(t, "tests/tagged.spec.ts", source)
	require.Len(t, chunks, 1)
	assert.Equal(t, "runs tagged", chunks[0].Name)
	assert.Equal(t, "Tagged", chunks[0].TestSuiteName)
}

func TestExtractTestFile_LifecycleSkipped(t *testing.T) {
	t.Parallel()

	source := `test.describe('Hooks', () => {
  test('before navigation settles', () => {});
  test('After teardown completes', () => {});
  test('waits before submit', () => {});
});
`
	chunks := extractSpec(t, "tests/hooks.spec.ts", source)
	require.Len(t, chunks, 1)
	assert.Equal(t, "waits before submit", chunks[0].Name)
}

func TestExtractTestFile_SingleArgumentSkipped(t *testing.T) {
	t.Parallel()

	source := `test.describe('Pending', () => {
  test('not yet implemented');
  test('implemented', () => {});
});
`
	chunks := extractSpec(t, "tests/pending.spec.ts", source)
	require.Len(t, chunks, 1)
	assert.Equal(t, "implemented", chunks[0].Name)
}

func TestExtractTestFile_SetupOnlyFallsBack(t *testing.T) {
	t.Parallel()

	source := `import { test } from './fixtures';

test.use({ storageState: 'playwright/.auth/user.json' });
`
	chunks := extractSpec(t, "auth.setup.ts", source)
	require.Len(t, chunks, 1)
	assert.Equal(t, KindSetup, chunks[0].Kind)
	assert.Equal(t, "Setup", chunks[0].Name)
}

func TestExtractTestFile_IncludeCode(t *testing.T) {
	t.Parallel()

	source := `test('captures source', () => { expect(1).toBe(1); });
`
	tree := parseSource(t, source)
	chunks := ExtractPlaywright("tests/code.spec.ts", []byte(source), tree.RootNode(), PlaywrightOptions{IncludeCode: true})

	require.Len(t, chunks, 1)
	assert.Equal(t, "test('captures source', () => { expect(1).toBe(1); })", chunks[0].Code)
}
