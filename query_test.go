package berth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupQueryContainer(t *testing.T) *Container {
	t.Helper()

	c := newTestContainer(t)
	require.NoError(t, c.Register(idA, nil, leaf(&svcA{})))
	require.NoError(t, c.Register(idB, []ID{idA}, leaf(&svcB{})))
	require.NoError(t, c.Register(idC, []ID{idB, idD}, leaf(&svcC{})))

	_, ok := c.Resolve(idB)
	require.True(t, ok)

	return c
}

func TestInspect(t *testing.T) {
	c := setupQueryContainer(t)

	info := c.Inspect(idB)
	assert.Equal(t, idB, info.ID)
	assert.Equal(t, idB.String(), info.Name)
	assert.Equal(t, "*berth.svcB", info.Type)
	assert.True(t, info.Registered)
	assert.True(t, info.Resolved)
	assert.Equal(t, []string{idA.String()}, info.Dependencies)
	assert.Equal(t, []string{idC.String()}, info.Dependents)
}

func TestInspect_UnregisteredDependency(t *testing.T) {
	c := setupQueryContainer(t)

	info := c.Inspect(idD)
	assert.False(t, info.Registered)
	assert.False(t, info.Resolved)
	assert.Empty(t, info.Dependencies)
	assert.Equal(t, []string{idC.String()}, info.Dependents)
}

func TestQuery(t *testing.T) {
	c := setupQueryContainer(t)

	all := Query(c, ServiceQuery{})
	assert.Len(t, all, 3)

	resolved := FindResolved(c)
	require.Len(t, resolved, 2)
	assert.Equal(t, idA, resolved[0].ID)
	assert.Equal(t, idB, resolved[1].ID)

	unresolved := FindUnresolved(c)
	require.Len(t, unresolved, 1)
	assert.Equal(t, idC, unresolved[0].ID)

	dependents := FindDependents(c, idA)
	require.Len(t, dependents, 1)
	assert.Equal(t, idB, dependents[0].ID)

	assert.Empty(t, FindDependents(c, idC))
}

func TestFindDependents_SameTypeNameDifferentTypes(t *testing.T) {
	c := newTestContainer(t)

	idFirst := func() ID {
		type Store struct{}
		return IDOf[*Store]()
	}()
	idSecond := func() ID {
		type Store struct{}
		return IDOf[*Store]()
	}()

	require.True(t, idFirst != idSecond)
	require.Equal(t, idFirst.String(), idSecond.String())

	type User struct{}

	require.NoError(t, c.Register(idFirst, nil, leaf(&struct{}{})))
	require.NoError(t, c.Register(idSecond, nil, leaf(&struct{}{})))
	require.NoError(t, c.Register(IDOf[*User](), []ID{idFirst}, leaf(&User{})))

	dependents := FindDependents(c, idFirst)
	require.Len(t, dependents, 1)
	assert.Equal(t, IDOf[*User](), dependents[0].ID)

	assert.Empty(t, FindDependents(c, idSecond))
}

func TestInspect_FullName(t *testing.T) {
	c := setupQueryContainer(t)

	info := c.Inspect(idA)
	assert.Equal(t, "*github.com/xraph/berth.svcA", info.FullName)
}
