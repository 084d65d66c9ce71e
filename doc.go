/*
Command comove finds groups of stars that move together through space.

Contents

  Program overview
  Command line usage
  Configuration file
  File formats
  Algorithm outline


Program overview

Input is an astrometric star catalog giving position, proper motion, and
parallax for each star.  Gaia archive exports are typical.  Output is the
same catalog with each star labeled as a member of a co-moving cluster or
as noise, and annotated with distance, Cartesian, and galactic coordinates
for plotting by some other program.

Sample run:

A catalog is a CSV file with a header line.  Only five columns are required,

  source_id,ra,dec,pmra,pmdec,parallax
  1001,66.72553,15.86953,104.9,-24.84,21.18
  1002,66.23141,16.37762,100.5,-27.87,21.37
  ...

Type "comove hyades.csv > hyades_clustered.csv" and the enriched catalog is
written to hyades_clustered.csv, while a summary is written to the terminal,

  200 stars, 2 clusters, 100 noise, 0 dropped
  Cluster Members       RA          Dec      pmRA    pmDec  Dist(kpc)      l       b

followed by a line for each cluster giving its mean position, proper
motion, distance, and galactic position.


Command line usage

Invoking the program without command line arguments (or with invalid
arguments) shows this usage prompt.

  Usage: comove [options] <catalog>    cluster stars in catalog file
         comove [options] -            cluster stars in CSV catalog from stdin
         comove -h                     display help and quick reference
         comove -v                     display version and copyright

  Options:
         -c <config-file>
         -eps <neighborhood radius>
         -min <min samples>

-eps and -min override the clustering parameters of the configuration
file.


Configuration file

The optional configuration file is YAML.  All keys are optional.  Values of
the form ${VAR} or ${VAR:-default} are replaced from the environment.

  clustering:
    eps: 0.1          # neighborhood radius in standardized feature space
    min_samples: 5    # neighborhood size, the star itself included
  features: [ra, dec, pmra, pmdec, distance]
  galactic_frame: j2000  # or b1950
  workers: 0        # 0 uses all cores
  logging:
    env: local      # local or dev for console logs, prod for JSON
    level: info
  metrics:
    textfile: ""    # Prometheus textfile collector output

Features may be any of ra, dec, pmra, pmdec, parallax, and distance.
The b1950 galactic frame is for catalogs with B1950 positions.


File formats

Catalog files with the extension .parquet are read as Parquet, anything
else as CSV.  Column names are matched without regard to case.  Columns
other than source_id, ra, dec, pmra, pmdec, and parallax are ignored.
Units are degrees for ra and dec, mas/yr for proper motions, and mas for
parallax.  Empty cells, nulls, and anything else that is not a number are
missing values.

Stars with a missing value, or with a parallax that is not positive, are
dropped and counted in the summary.

The output CSV has columns

  source_id,ra,dec,pmra,pmdec,parallax,distance,cluster,x,y,z,galactic_l,galactic_b

Distance is 1/parallax, in kpc.  Cluster is -1 for noise.  X, y, and z are
equatorial Cartesian coordinates in the unit of distance.  Galactic
coordinates are in degrees.


Algorithm outline

1.  Distance is computed from parallax for each star.

2.  Each feature column is standardized to mean 0 and sample standard
deviation 1 over the whole catalog.

3.  Stars are clustered by DBSCAN.  A star with at least min_samples stars
within eps of it, itself included, is a core star.  Clusters grow from
core stars through neighboring core stars and take in the non-core stars
they reach.  Everything else is noise.  Stars are scanned in input order,
so a catalog in the same order always gives the same labels.

4.  Cartesian and galactic coordinates are computed for each star.  They
do not depend on clustering.

-------------
Public domain.
*/
package main
