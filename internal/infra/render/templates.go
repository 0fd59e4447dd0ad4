// Package render materializes named templates into the working tree.
// It owns the built-in template store and the idempotent write behavior;
// what gets rendered where is decided by the use cases.
package render

import "planforge/internal/domain"

const classTemplate = `namespace {{namespace}};

public class {{name}}
{
}
`

const testClassTemplate = `using Xunit;

namespace {{namespace}};

public class {{name}}Tests
{
    [Fact]
    public void {{name}}_CanBeConstructed()
    {
        var sut = new {{name}}();
        Assert.NotNull(sut);
    }
}
`

const libraryProject = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
    <Nullable>enable</Nullable>
    <ImplicitUsings>enable</ImplicitUsings>
  </PropertyGroup>
</Project>
`

const testProject = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
    <Nullable>enable</Nullable>
    <IsPackable>false</IsPackable>
  </PropertyGroup>
  <ItemGroup>
    <PackageReference Include="Microsoft.NET.Test.Sdk" Version="17.11.1" />
    <PackageReference Include="xunit" Version="2.9.2" />
    <PackageReference Include="xunit.runner.visualstudio" Version="2.8.2" />
  </ItemGroup>
</Project>
`

// builtinTemplates returns the fixed template store keyed by name.
func builtinTemplates() map[string]string {
	return map[string]string{
		domain.TemplateClass:          classTemplate,
		domain.TemplateTestClass:      testClassTemplate,
		domain.TemplateLibraryProject: libraryProject,
		domain.TemplateTestProject:    testProject,
	}
}
