package audience

import (
    "reflect"
    "testing"
)

func TestBuild_EmptySelectionMeansAll(t *testing.T) {
    target := BuildDefault(nil, nil)

    if !reflect.DeepEqual(target.Age, []string{"all"}) {
        t.Errorf("Expected age [all], got %v", target.Age)
    }
    if !reflect.DeepEqual(target.Gender, []string{"all"}) {
        t.Errorf("Expected gender [all], got %v", target.Gender)
    }
}

func TestBuild_FullSelectionMeansAll(t *testing.T) {
    target := Build(
        []string{"18-24", "25-34"},
        []string{"male", "female"},
        []string{"18-24", "25-34"},
        []string{"male", "female"},
    )

    if !reflect.DeepEqual(target.Age, []string{"all"}) {
        t.Errorf("Expected age [all] for complete selection, got %v", target.Age)
    }
    if !reflect.DeepEqual(target.Gender, []string{"all"}) {
        t.Errorf("Expected gender [all] for complete selection, got %v", target.Gender)
    }
}

func TestBuild_PartialSelectionKeptVerbatim(t *testing.T) {
    target := BuildDefault([]string{"25-34"}, []string{"female"})

    if !reflect.DeepEqual(target.Age, []string{"25-34"}) {
        t.Errorf("Expected age [25-34], got %v", target.Age)
    }
    if !reflect.DeepEqual(target.Gender, []string{"female"}) {
        t.Errorf("Expected gender [female], got %v", target.Gender)
    }
}

func TestBuild_DimensionsNormalizeIndependently(t *testing.T) {
    // Full age set, no genders: the documented console scenario.
    target := BuildDefault(
        []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+"},
        nil,
    )

    if !reflect.DeepEqual(target.Age, []string{"all"}) {
        t.Errorf("Expected full age selection to normalize to [all], got %v", target.Age)
    }
    if !reflect.DeepEqual(target.Gender, []string{"all"}) {
        t.Errorf("Expected empty gender selection to normalize to [all], got %v", target.Gender)
    }
}

func TestBuild_SelectionOrderPreserved(t *testing.T) {
    target := BuildDefault([]string{"35-44", "18-24"}, []string{"male"})
    if !reflect.DeepEqual(target.Age, []string{"35-44", "18-24"}) {
        t.Errorf("Expected selection preserved verbatim, got %v", target.Age)
    }
}

func TestBuild_EmptyOptionSetStillReturnsWildcard(t *testing.T) {
    target := Build([]string{"whatever"}, nil, nil, nil)

    if !reflect.DeepEqual(target.Age, []string{"all"}) {
        t.Errorf("Expected [all] for empty option set, got %v", target.Age)
    }
    if !reflect.DeepEqual(target.Gender, []string{"all"}) {
        t.Errorf("Expected [all] for empty option set, got %v", target.Gender)
    }
}

func TestBuild_SupersetSelectionNormalizesToAll(t *testing.T) {
    // Selection covering every option plus a stray value still covers all.
    target := Build([]string{"a", "b", "c"}, nil, []string{"a", "b"}, []string{"x"})
    if !reflect.DeepEqual(target.Age, []string{"all"}) {
        t.Errorf("Expected [all] when selection covers every option, got %v", target.Age)
    }
}
