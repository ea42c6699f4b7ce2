package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the page-object strategy:
// - Locator-typed properties become locator chunks positioned at their
//   constructor assignment, computed relative to the constructor body
// - Non-locator constructor assignments and initialized fields become
//   helper chunks; locator-claimed names are not duplicated
// - Non-constructor methods merge into one member chunk whose kind follows
//   the ordered keyword tables (assertion vocabulary wins over interaction)
// - Constructor-only classes still produce a class chunk
// - Repository and module context derive from path segments
// - Relationship metadata from the import graph attaches to every chunk
// - Files without classes fall back to edge-case extraction

const loginPageSource = `import { Page, Locator } from '@playwright/test';

export class LoginPage {
  readonly loginBtn: Locator;

  constructor(page: Page) {
    this.loginBtn = page.getByRole('button', { name: 'Log in' });
  }

  async clickLogin() {
    await this.loginBtn.click();
  }
}
`

func extractObject(t *testing.T, file, source string, opts PlaywrightOptions) []Chunk {
	t.Helper()
	tree := parseSource(t, source)
	return ExtractPlaywright(file, []byte(source), tree.RootNode(), opts)
}

func TestExtractPageObject_LocatorAndActionChunks(t *testing.T) {
	t.Parallel()

	chunks := extractObject(t, "tests/pages/LoginPage.ts", loginPageSource, PlaywrightOptions{})
	require.Len(t, chunks, 2)

	locator := chunks[0]
	assert.Equal(t, "loginBtn", locator.Name)
	assert.Equal(t, KindLocator, locator.Kind)
	assert.Equal(t, "LoginPage", locator.OwningClass)
	// The reported span is the constructor assignment, not the field.
	assert.Equal(t, 7, locator.Location.StartLine)
	assert.Equal(t, 4, locator.Location.StartColumn)
	assert.Equal(t, 7, locator.Location.EndLine)

	actions := chunks[1]
	assert.Equal(t, "LoginPage_actions", actions.Name)
	assert.Equal(t, KindAction, actions.Kind)
	assert.Equal(t, "clickLogin", actions.MemberNames)
	assert.Equal(t, "LoginPage", actions.OwningClass)
	assert.Equal(t, 10, actions.Location.StartLine)
	assert.Equal(t, 12, actions.Location.EndLine)

	// Path context: no repository marker, module from the tests/ segment.
	assert.Empty(t, locator.Repository)
	assert.Equal(t, "pages", locator.Module)
}

func TestExtractPageObject_IncludeCodeUsesAssignmentText(t *testing.T) {
	t.Parallel()

	chunks := extractObject(t, "tests/pages/LoginPage.ts", loginPageSource, PlaywrightOptions{IncludeCode: true})
	require.Len(t, chunks, 2)
	assert.Equal(t, "this.loginBtn = page.getByRole('button', { name: 'Log in' });", chunks[0].Code)
}

func TestExtractPageObject_SimpleProperties(t *testing.T) {
	t.Parallel()

	source := `export class SettingsPage {
  menu: Locator;
  baseUrl: string;
  readonly timeout = 5000;

  constructor(page) {
    this.page = page;
    this.menu = page.locator('#menu');
    this.baseUrl = 'https://example.test';
  }

  async expectSaved() {
    await expect(this.toast).toBeVisible();
  }

  async clickSave() {
    await this.menu.click();
  }
}
`
	chunks := extractObject(t, "src/settings/SettingsPage.ts", source, PlaywrightOptions{})
	require.Len(t, chunks, 5)

	assert.Equal(t, "menu", chunks[0].Name)
	assert.Equal(t, KindLocator, chunks[0].Kind)

	// Constructor assignments that do not construct locators are helpers;
	// the locator-claimed name is not emitted twice.
	assert.Equal(t, "page", chunks[1].Name)
	assert.Equal(t, KindHelper, chunks[1].Kind)
	assert.Equal(t, "baseUrl", chunks[2].Name)
	assert.Equal(t, KindHelper, chunks[2].Kind)

	// Field with a direct initializer.
	assert.Equal(t, "timeout", chunks[3].Name)
	assert.Equal(t, KindHelper, chunks[3].Kind)

	// Assertion vocabulary wins even though click* members are present.
	group := chunks[4]
	assert.Equal(t, "SettingsPage_assertions", group.Name)
	assert.Equal(t, KindAssert, group.Kind)
	assert.Equal(t, "expectSaved, clickSave", group.MemberNames)
}

func TestExtractPageObject_UninitializedLocatorSkipped(t *testing.T) {
	t.Parallel()

	source := `export class WidgetPage {
  spinner: Locator;

  hide() {
    this.spinner = null;
  }
}
`
	chunks := extractObject(t, "src/widgets/WidgetPage.ts", source, PlaywrightOptions{})
	require.Len(t, chunks, 1)

	// The locator is declared but never wired up, so only the member group
	// remains, classified helper for lack of keyword matches.
	assert.Equal(t, "WidgetPage_helpers", chunks[0].Name)
	assert.Equal(t, KindHelper, chunks[0].Kind)
	assert.Equal(t, "hide", chunks[0].MemberNames)
}

func TestExtractPageObject_ConstructorOnlyClass(t *testing.T) {
	t.Parallel()

	source := `export class BasePage {
  constructor() {
    super();
  }
}
`
	chunks := extractObject(t, "src/pages/BasePage.ts", source, PlaywrightOptions{})
	require.Len(t, chunks, 1)
	assert.Equal(t, "BasePage", chunks[0].Name)
	assert.Equal(t, KindClass, chunks[0].Kind)
	assert.Equal(t, "BasePage", chunks[0].OwningClass)
}

func TestExtractPageObject_RelatedTestFiles(t *testing.T) {
	t.Parallel()

	rg := NewRelationshipGraph()
	rg.add("LoginPage", "tests/b.spec.ts")
	rg.add("LoginPage", "tests/a.spec.ts")
	rg.add("OtherPage", "tests/a.spec.ts")

	chunks := extractObject(t, "tests/pages/LoginPage.ts", loginPageSource, PlaywrightOptions{Relations: rg})
	require.Len(t, chunks, 2)

	for _, chunk := range chunks {
		assert.Equal(t, []string{"tests/a.spec.ts", "tests/b.spec.ts"}, chunk.RelatedTestFiles)
	}
}

func TestExtractPageObject_NoClassesFallsBack(t *testing.T) {
	t.Parallel()

	source := `export const SELECTORS = { save: '#save', cancel: '#cancel' };
`
	chunks := extractObject(t, "src/selectors.ts", source, PlaywrightOptions{})
	require.Len(t, chunks, 1)
	assert.Equal(t, "SELECTORS", chunks[0].Name)
	assert.Equal(t, KindConstant, chunks[0].Kind)
}

func TestInferRepositoryModule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file       string
		repository string
		module     string
	}{
		{"projects/webapp/tests/pages/LoginPage.ts", "webapp", "pages"},
		{"tests/pages/LoginPage.ts", "", "pages"},
		{"lib/widgets/Button.ts", "", "widgets"},
		{"Page.ts", "", ""},
		{"src/models/User.ts", "models", "models"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			repository, module := inferRepositoryModule(tt.file)
			assert.Equal(t, tt.repository, repository)
			assert.Equal(t, tt.module, module)
		})
	}
}

func TestClassifyMembers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindAssert, classifyMembers("async verifyTitle() { await expect(x).toBe(1); }"))
	assert.Equal(t, KindAction, classifyMembers("async clickSave() { await this.save.click(); }"))
	assert.Equal(t, KindHelper, classifyMembers("format() { return this.value.trim(); }"))
	// Matching is case-insensitive on the member source text.
	assert.Equal(t, KindAction, classifyMembers("async gotoHome() {}"))
}
