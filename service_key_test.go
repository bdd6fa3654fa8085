package berth

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID_Equality(t *testing.T) {
	assert.Equal(t, IDOf[*svcA](), IDOf[*svcA]())
	assert.NotEqual(t, IDOf[*svcA](), IDOf[svcA]())
	assert.NotEqual(t, IDOf[*svcA](), NamedID[*svcA]("x"))
	assert.Equal(t, NamedID[*svcA]("x"), NamedID[*svcA]("x"))

	set := map[ID]int{IDOf[*svcA](): 1}
	set[IDOf[*svcA]()]++
	assert.Equal(t, 2, set[IDOf[*svcA]()])
}

func TestID_Accessors(t *testing.T) {
	id := NamedID[*svcA]("primary")

	assert.Equal(t, reflect.TypeFor[*svcA](), id.Type())
	assert.Equal(t, "primary", id.Name())
	assert.False(t, id.IsZero())
	assert.True(t, ID{}.IsZero())
}

func TestID_String(t *testing.T) {
	assert.Equal(t, "*berth.svcA", IDOf[*svcA]().String())
	assert.Equal(t, "*berth.svcA[name=primary]", NamedID[*svcA]("primary").String())
	assert.Equal(t, "<nil>", ID{}.String())
}

func TestKey(t *testing.T) {
	key := NamedKey[*svcB]("b")

	assert.Equal(t, NamedID[*svcB]("b"), key.ID())
	assert.Equal(t, "*berth.svcB[name=b]", key.String())
	assert.Equal(t, IDOf[*svcB](), KeyOf[*svcB]().ID())
}

func TestIDs(t *testing.T) {
	ids := IDs(KeyOf[*svcA](), NamedKey[*svcB]("b"))

	assert.Equal(t, []ID{IDOf[*svcA](), NamedID[*svcB]("b")}, ids)
	assert.Empty(t, IDs())
}

func TestID_FullName(t *testing.T) {
	assert.Equal(t, "*github.com/xraph/berth.svcA", IDOf[*svcA]().FullName())
	assert.Equal(t, "*github.com/xraph/berth.svcA[name=primary]", NamedID[*svcA]("primary").FullName())
	assert.Equal(t, "github.com/xraph/berth.greeter", IDOf[greeter]().FullName())
	assert.Equal(t, "map[string]*github.com/xraph/berth.svcA", IDOf[map[string]*svcA]().FullName())
	assert.Equal(t, "[]string", IDOf[[]string]().FullName())
	assert.Equal(t, "[2]int", IDOf[[2]int]().FullName())
	assert.Equal(t, "int[name=port]", NamedID[int]("port").FullName())
	assert.Equal(t, "<nil>", ID{}.FullName())
}
