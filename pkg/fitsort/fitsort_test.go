package fitsort

import "testing"

func TestConfigDefaults(t *testing.T) {
	c := &Config{}
	if c.ext() != DefaultExt {
		t.Errorf("ext() = %q, want %q", c.ext(), DefaultExt)
	}
	if c.cutoff() != DefaultNightCutoff {
		t.Errorf("cutoff() = %d, want %d", c.cutoff(), DefaultNightCutoff)
	}

	c = &Config{Ext: ".fits", NightCutoff: 1}
	if c.ext() != ".fits" || c.cutoff() != 1 {
		t.Errorf("ext(), cutoff() = %q, %d; want .fits, 1", c.ext(), c.cutoff())
	}
}
