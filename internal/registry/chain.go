package registry

import "errors"

// Chain overlays stores: a key exists when any store has it, and its
// default value comes from the first store that sets one.
func Chain(stores ...Store) Store {
	kept := make(chain, 0, len(stores))
	for _, s := range stores {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return kept
}

type chain []Store

func (c chain) OpenKey(path string) (Key, error) {
	var (
		keys    []Key
		openErr error
	)
	for _, s := range c {
		k, err := s.OpenKey(path)
		if err != nil {
			if !errors.Is(err, ErrNotExist) && openErr == nil {
				openErr = err
			}
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		if openErr != nil {
			return nil, openErr
		}
		return nil, ErrNotExist
	}
	return &chainKey{stores: c, path: path, keys: keys}, nil
}

type chainKey struct {
	stores chain
	path   string
	keys   []Key
}

func (k *chainKey) OpenSubKey(path string) (Key, error) {
	return k.stores.OpenKey(Join(k.path, path))
}

func (k *chainKey) DefaultValue() (string, error) {
	for _, key := range k.keys {
		if v, err := key.DefaultValue(); err == nil {
			return v, nil
		}
	}
	return "", ErrNotExist
}

func (k *chainKey) Close() error {
	errs := make([]error, 0, len(k.keys))
	for _, key := range k.keys {
		errs = append(errs, key.Close())
	}
	return errors.Join(errs...)
}
